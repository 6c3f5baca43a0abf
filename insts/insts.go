// Package insts provides instruction definitions and decoding for the
// DASH-style cc-NUMA simulator.
//
// This package implements decoding of fixed-width textual machine-code
// records into structured instruction representations. It supports:
//   - LW (load word): opcode 100011
//   - SW (store word): opcode 101011
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode("000: 10001100101000010000000000000000")
//	fmt.Printf("Op: %v, Addr: %d, Reg: %d\n", inst.Op, inst.EffectiveAddress(), inst.Register())
package insts

// Op represents an instruction opcode.
type Op uint8

// Opcodes.
const (
	OpUnknown Op = iota
	OpLoad       // LW, opcode bits 100011
	OpStore      // SW, opcode bits 101011
)

// String returns the mnemonic for the opcode.
func (o Op) String() string {
	switch o {
	case OpLoad:
		return "LW"
	case OpStore:
		return "SW"
	default:
		return "UNKNOWN"
	}
}

// Instruction represents a decoded machine-code record.
type Instruction struct {
	Node int // Issuing node, 0-3
	CPU  int // Issuing processor within the node, 0-1
	Op   Op  // Operation code

	// Raw instruction fields
	Rs         uint32 // Base address field, 5 bits
	Rt         uint32 // Register selector field, 5 bits
	ByteOffset uint32 // Byte offset field, 16 bits
}

// EffectiveAddress computes the global word address the instruction
// accesses. The byte offset is shifted down to a word offset and added
// to the base field.
func (i *Instruction) EffectiveAddress() int {
	return int(i.Rs + i.ByteOffset/4)
}

// Register selects the target register within the processor.
// An odd rt field selects $s1 (register 0), an even rt field $s2 (register 1).
func (i *Instruction) Register() int {
	return int((i.Rt + 1) % 2)
}
