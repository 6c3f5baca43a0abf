// Package driver sequences the instruction pipeline: fetch, decode,
// execute, memory access, one instruction fully retired before the next
// is fetched. The strict ordering is what the coherence protocol's
// correctness rests on, so there is exactly one instruction in flight and
// no overlap.
package driver

import (
	"fmt"

	"github.com/sarchlab/dashsim/coherence"
	"github.com/sarchlab/dashsim/insts"
	"github.com/sarchlab/dashsim/loader"
	"github.com/sarchlab/dashsim/machine"
	"github.com/sarchlab/dashsim/timing/latency"
)

// State identifies a stage of the driver's instruction cycle.
type State uint8

// Driver states. One full pass through AwaitInstruction, Decoding,
// Executing, and MemoryAccess retires one instruction; Done is terminal.
const (
	AwaitInstruction State = iota
	Decoding
	Executing
	MemoryAccess
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AwaitInstruction:
		return "AwaitInstruction"
	case Decoding:
		return "Decoding"
	case Executing:
		return "Executing"
	case MemoryAccess:
		return "MemoryAccess"
	case Done:
		return "Done"
	default:
		return "Invalid"
	}
}

// Stats holds run statistics.
type Stats struct {
	// Instructions is the number of retired instructions.
	Instructions uint64
	// Loads and Stores count retired instructions by operation.
	Loads  uint64
	Stores uint64
	// Cases counts accesses by protocol classification.
	Cases [latency.NumAccessKinds]uint64
	// Cycles is the total simulated clock charged.
	Cycles uint64
}

// StepResult reports the outcome of one Step call.
type StepResult struct {
	// State is the driver state after the step.
	State State
	// Retired is true when an instruction fully retired.
	Retired bool
	// Done is true when the instruction source is exhausted.
	Done bool
	// Err is set on a decode or execute failure; the driver halts.
	Err error
}

// Driver runs an instruction stream against a coherence engine.
type Driver struct {
	records []string
	next    int

	decoder *insts.Decoder
	engine  *coherence.Engine
	costs   *latency.Table

	state State
	stats Stats

	maxInstructions uint64

	// In-flight instruction latches.
	fetched string
	inst    *insts.Instruction
	addr    int
	reg     int
}

// Option is a functional option for configuring the Driver.
type Option func(*Driver)

// WithCostTable sets a custom access cost table.
func WithCostTable(t *latency.Table) Option {
	return func(d *Driver) {
		d.costs = t
	}
}

// WithMaxInstructions limits how many instructions the driver retires.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) Option {
	return func(d *Driver) {
		d.maxInstructions = max
	}
}

// New creates a driver over the given machine and instruction stream.
func New(system *machine.System, prog *loader.Program, opts ...Option) *Driver {
	d := &Driver{
		records: prog.Records,
		decoder: insts.NewDecoder(),
		costs:   latency.NewTable(),
		state:   AwaitInstruction,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.engine = coherence.NewEngine(system, coherence.WithCostTable(d.costs))

	return d
}

// Engine returns the driver's coherence engine.
func (d *Driver) Engine() *coherence.Engine {
	return d.engine
}

// State returns the current driver state.
func (d *Driver) State() State {
	return d.state
}

// Stats returns the run statistics so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Step advances the driver until one instruction retires, the stream is
// exhausted, or an error halts the run.
func (d *Driver) Step() StepResult {
	if d.state == Done {
		return StepResult{State: Done, Done: true}
	}

	for {
		result := d.advance()
		if result.Retired || result.Done || result.Err != nil {
			return result
		}
	}
}

// Run steps the driver to stream exhaustion. End of stream is the
// expected termination; only decode and execute failures are errors.
func (d *Driver) Run() error {
	for {
		result := d.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Done {
			return nil
		}
	}
}

// advance performs one state transition.
func (d *Driver) advance() StepResult {
	switch d.state {
	case AwaitInstruction:
		if d.next >= len(d.records) ||
			(d.maxInstructions > 0 && d.stats.Instructions >= d.maxInstructions) {
			d.state = Done
			return StepResult{State: Done, Done: true}
		}
		d.fetched = d.records[d.next]
		d.next++
		d.state = Decoding

	case Decoding:
		inst, err := d.decoder.Decode(d.fetched)
		if err != nil {
			d.state = Done
			return StepResult{
				State: Done,
				Done:  true,
				Err:   fmt.Errorf("instruction %d: %w", d.next, err),
			}
		}
		d.inst = inst
		d.state = Executing

	case Executing:
		d.addr = d.inst.EffectiveAddress()
		d.reg = d.inst.Register()
		if !machine.ValidAddress(d.addr) {
			d.state = Done
			return StepResult{
				State: Done,
				Done:  true,
				Err: fmt.Errorf("instruction %d: effective address %d out of range",
					d.next, d.addr),
			}
		}
		d.state = MemoryAccess

	case MemoryAccess:
		var result coherence.AccessResult
		switch d.inst.Op {
		case insts.OpLoad:
			result = d.engine.Load(d.inst.Node, d.inst.CPU, d.addr, d.reg)
			d.stats.Loads++
		case insts.OpStore:
			result = d.engine.Store(d.inst.Node, d.inst.CPU, d.addr, d.reg)
			d.stats.Stores++
		}
		d.stats.Cases[result.Case]++
		d.stats.Cycles += result.Cycles
		d.stats.Instructions++
		d.state = AwaitInstruction
		return StepResult{State: AwaitInstruction, Retired: true}
	}

	return StepResult{State: d.state}
}
