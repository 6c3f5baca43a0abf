package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// CostConfig holds the simulated-clock cost of each memory access case.
// The defaults are the DASH protocol reference costs.
type CostConfig struct {
	// LocalHit is the cost of a load served by the requesting
	// processor's own cache. Default: 1 cycle.
	LocalHit uint64 `json:"local_hit"`

	// SiblingHit is the cost of a load served by the other processor's
	// cache on the same node. Default: 30 cycles.
	SiblingHit uint64 `json:"sibling_hit"`

	// HomeFetch is the cost of a load served by the home node's memory
	// when the word is uncached or shared. Default: 100 cycles.
	HomeFetch uint64 `json:"home_fetch"`

	// DirtyMigration is the cost of a load that must pull the line from
	// a remote dirty owner and write it back home. Default: 135 cycles.
	DirtyMigration uint64 `json:"dirty_migration"`

	// WriteHit is the cost of a store into the writer's own valid cache
	// line. Default: 1 cycle.
	WriteHit uint64 `json:"write_hit"`

	// WriteMiss is the cost of a store written straight to home memory
	// (no-write-allocate). Default: 100 cycles.
	WriteMiss uint64 `json:"write_miss"`
}

// DefaultCostConfig returns a CostConfig with the reference protocol costs.
func DefaultCostConfig() *CostConfig {
	return &CostConfig{
		LocalHit:       1,
		SiblingHit:     30,
		HomeFetch:      100,
		DirtyMigration: 135,
		WriteHit:       1,
		WriteMiss:      100,
	}
}

// LoadConfig loads a CostConfig from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*CostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cost config file: %w", err)
	}

	config := DefaultCostConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cost config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a CostConfig to a JSON file.
func (c *CostConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cost config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cost config file: %w", err)
	}

	return nil
}

// Validate checks that all cost values are valid (> 0).
func (c *CostConfig) Validate() error {
	if c.LocalHit == 0 {
		return fmt.Errorf("local_hit must be > 0")
	}
	if c.SiblingHit == 0 {
		return fmt.Errorf("sibling_hit must be > 0")
	}
	if c.HomeFetch == 0 {
		return fmt.Errorf("home_fetch must be > 0")
	}
	if c.DirtyMigration == 0 {
		return fmt.Errorf("dirty_migration must be > 0")
	}
	if c.WriteHit == 0 {
		return fmt.Errorf("write_hit must be > 0")
	}
	if c.WriteMiss == 0 {
		return fmt.Errorf("write_miss must be > 0")
	}
	return nil
}

// Clone returns a copy of the CostConfig.
func (c *CostConfig) Clone() *CostConfig {
	clone := *c
	return &clone
}
