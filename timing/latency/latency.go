// Package latency provides the access cost model for cycle-accurate
// simulation of the directory protocol.
//
// Costs are counted in simulated clock units and can be configured via
// CostConfig; the defaults are the DASH reference values.
package latency

// AccessKind classifies a memory access by how the protocol served it.
type AccessKind uint8

// Access classifications.
const (
	LoadLocalHit       AccessKind = iota // valid matching line in own cache
	LoadSiblingHit                       // valid matching line in the sibling processor's cache
	LoadHomeFetch                        // fetched from home memory (uncached/shared)
	LoadDirtyMigration                   // migrated from a remote dirty owner
	StoreHit                             // store into own valid cache line
	StoreMiss                            // store straight to home memory

	NumAccessKinds = 6
)

// String returns the classification name.
func (k AccessKind) String() string {
	switch k {
	case LoadLocalHit:
		return "load local hit"
	case LoadSiblingHit:
		return "load sibling hit"
	case LoadHomeFetch:
		return "load home fetch"
	case LoadDirtyMigration:
		return "load dirty migration"
	case StoreHit:
		return "store hit"
	case StoreMiss:
		return "store miss"
	default:
		return "unknown"
	}
}

// IsLoad reports whether the classification belongs to a load access.
func (k AccessKind) IsLoad() bool {
	switch k {
	case LoadLocalHit, LoadSiblingHit, LoadHomeFetch, LoadDirtyMigration:
		return true
	default:
		return false
	}
}

// Table provides access cost lookups.
type Table struct {
	config *CostConfig
}

// NewTable creates a cost table with the default reference costs.
func NewTable() *Table {
	return &Table{
		config: DefaultCostConfig(),
	}
}

// NewTableWithConfig creates a cost table with a custom configuration.
func NewTableWithConfig(config *CostConfig) *Table {
	return &Table{
		config: config,
	}
}

// CostOf returns the clock cost charged for the given access classification.
func (t *Table) CostOf(kind AccessKind) uint64 {
	switch kind {
	case LoadLocalHit:
		return t.config.LocalHit
	case LoadSiblingHit:
		return t.config.SiblingHit
	case LoadHomeFetch:
		return t.config.HomeFetch
	case LoadDirtyMigration:
		return t.config.DirtyMigration
	case StoreHit:
		return t.config.WriteHit
	case StoreMiss:
		return t.config.WriteMiss
	default:
		return 1
	}
}

// Config returns the current cost configuration.
func (t *Table) Config() *CostConfig {
	return t.config
}
