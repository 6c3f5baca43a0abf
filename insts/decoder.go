package insts

import (
	"fmt"

	"github.com/sarchlab/dashsim/machine"
)

// Record field layout, character positions within a 37-character line:
//
//	[0:2]   node index (2 bits)
//	[2:3]   cpu index (1 bit)
//	[3:5]   separator ": "
//	[5:11]  opcode (6 bits)
//	[11:16] rs field (5 bits)
//	[16:21] rt field (5 bits)
//	[21:37] byte offset (16 bits)
const (
	RecordLength = 37

	opcodeLoad  = "100011"
	opcodeStore = "101011"

	separator = ": "
)

// UnknownOpcodeError reports a record whose opcode field names no
// supported operation. Surfacing it, rather than skipping the record,
// keeps bugs in the instruction stream visible.
type UnknownOpcodeError struct {
	Opcode string
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %q", e.Opcode)
}

// Decoder decodes fixed-width machine-code records into instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes one machine-code record.
//
// Malformed records (wrong length, bad separator, non-binary field
// characters) fail fast with an error. An unknown opcode returns the
// decoded instruction with OpUnknown together with an
// *UnknownOpcodeError, so the caller can report it without touching
// memory or the clock.
func (d *Decoder) Decode(record string) (*Instruction, error) {
	if len(record) != RecordLength {
		return nil, fmt.Errorf("record has %d characters, expected %d", len(record), RecordLength)
	}
	if record[3:5] != separator {
		return nil, fmt.Errorf("record separator is %q, expected %q", record[3:5], separator)
	}

	node, err := machine.ParseBits(record[0:2])
	if err != nil {
		return nil, fmt.Errorf("failed to decode node field: %w", err)
	}

	cpu, err := machine.ParseBits(record[2:3])
	if err != nil {
		return nil, fmt.Errorf("failed to decode cpu field: %w", err)
	}

	rs, err := machine.ParseBits(record[11:16])
	if err != nil {
		return nil, fmt.Errorf("failed to decode rs field: %w", err)
	}

	rt, err := machine.ParseBits(record[16:21])
	if err != nil {
		return nil, fmt.Errorf("failed to decode rt field: %w", err)
	}

	offset, err := machine.ParseBits(record[21:37])
	if err != nil {
		return nil, fmt.Errorf("failed to decode byte offset field: %w", err)
	}

	inst := &Instruction{
		Node:       int(node),
		CPU:        int(cpu),
		Rs:         uint32(rs),
		Rt:         uint32(rt),
		ByteOffset: uint32(offset),
	}

	switch opcode := record[5:11]; opcode {
	case opcodeLoad:
		inst.Op = OpLoad
	case opcodeStore:
		inst.Op = OpStore
	default:
		if _, err := machine.ParseBits(opcode); err != nil {
			return nil, fmt.Errorf("failed to decode opcode field: %w", err)
		}
		return inst, &UnknownOpcodeError{Opcode: opcode}
	}

	return inst, nil
}
