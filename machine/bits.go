package machine

import (
	"fmt"
	"strconv"
)

// ParseBits converts a fixed-width binary field, most significant bit
// first, into an unsigned integer. Used at the decode boundary where the
// instruction stream is bit-level text.
func ParseBits(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("not a binary field %q: %w", s, err)
	}
	return v, nil
}

// FormatBits renders a value as a zero-padded binary string of the given
// width, most significant bit first. Used at the report boundary where
// register, memory, and directory contents are bit-level text.
func FormatBits(v uint64, width int) string {
	return fmt.Sprintf("%0*b", width, v)
}
