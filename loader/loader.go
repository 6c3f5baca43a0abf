// Package loader provides reading of textual machine-code instruction
// streams.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Program represents a loaded instruction stream ready for the driver.
type Program struct {
	// Records contains one fixed-width machine-code record per entry,
	// in fetch order.
	Records []string
}

// Load reads a machine-code file and returns a Program.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine code file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return prog, nil
}

// Read reads machine-code records until end of stream. Blank lines are
// skipped; end of stream is the expected termination, not an error.
// Records are not validated here; the decoder rejects malformed ones.
func Read(r io.Reader) (*Program, error) {
	prog := &Program{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		prog.Records = append(prog.Records, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan instruction stream: %w", err)
	}

	return prog, nil
}
