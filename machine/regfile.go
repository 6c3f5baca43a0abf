package machine

import "fmt"

// RegFile holds one processor's registers, $s1 (index 0) and $s2 (index 1).
type RegFile struct {
	regs [RegsPerCPU]Word
}

// Read returns the value of a register.
func (r *RegFile) Read(reg int) Word {
	r.mustBeValid(reg)
	return r.regs[reg]
}

// Write sets the value of a register.
func (r *RegFile) Write(reg int, value Word) {
	r.mustBeValid(reg)
	r.regs[reg] = value
}

func (r *RegFile) mustBeValid(reg int) {
	if reg < 0 || reg >= RegsPerCPU {
		panic(fmt.Sprintf("register index %d out of range", reg))
	}
}
