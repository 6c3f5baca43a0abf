// Package coherence implements the directory-based cache-coherence engine.
//
// The engine classifies every load and store against the requesting
// processor's cache, its sibling's cache, the home node's memory and
// directory, and a possible remote dirty owner, then applies the
// protocol's state transitions and charges the access's clock cost.
// All calls mutate shared machine state and must arrive strictly
// sequentially; the driver guarantees one access at a time.
package coherence

import (
	"fmt"

	"github.com/sarchlab/dashsim/machine"
	"github.com/sarchlab/dashsim/timing/latency"
)

// AccessResult describes how one memory access was served.
type AccessResult struct {
	// Case is the protocol classification of the access.
	Case latency.AccessKind

	// Cycles is the clock cost charged for the access.
	Cycles uint64

	// Value is the word the access moved: the loaded value for loads,
	// the stored value for stores.
	Value machine.Word
}

// Engine is the coherence engine. It owns the global clock and is the
// only mutator of machine state during a run.
type Engine struct {
	system *machine.System
	costs  *latency.Table
	clock  uint64
}

// EngineOption is a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithCostTable sets a custom access cost table.
func WithCostTable(t *latency.Table) EngineOption {
	return func(e *Engine) {
		e.costs = t
	}
}

// NewEngine creates a coherence engine over the given machine.
func NewEngine(system *machine.System, opts ...EngineOption) *Engine {
	e := &Engine{
		system: system,
		costs:  latency.NewTable(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Clock returns the accumulated simulated clock count. It only ever grows.
func (e *Engine) Clock() uint64 {
	return e.clock
}

// System returns the machine the engine operates on.
func (e *Engine) System() *machine.System {
	return e.system
}

// Load performs one load-word access for (node, cpu), reading the global
// word address into the processor's register.
//
// Classification order: local cache, sibling cache, home memory
// (uncached/shared), remote dirty owner. Before a new line is installed,
// the slot's current occupant is written back and unrecorded.
func (e *Engine) Load(node, cpu, addr, reg int) AccessResult {
	e.mustBeValidAccess(node, addr)

	n := e.system.Node(node)
	cache := n.Caches[cpu]

	// Case 1: valid matching line in the requester's own cache.
	if data, ok := cache.Probe(addr); ok {
		n.Regs[cpu].Write(reg, data)
		return e.charge(latency.LoadLocalHit, data)
	}

	// The slot is about to be reused for a different tag.
	e.evict(node, cpu, addr)

	// Case 2: valid matching line in the sibling processor's cache.
	sibling := (cpu + 1) % machine.CPUsPerNode
	if data, ok := n.Caches[sibling].Probe(addr); ok {
		n.Regs[cpu].Write(reg, data)
		cache.Install(addr, data)
		return e.charge(latency.LoadSiblingHit, data)
	}

	entry := e.system.Entry(addr)

	// Case 3: clean fetch from home memory.
	if entry.State == machine.Uncached || entry.State == machine.Shared {
		data := e.system.ReadMemory(addr)
		n.Regs[cpu].Write(reg, data)
		cache.Install(addr, data)
		entry.State = machine.Shared
		entry.Presence.Add(node)
		return e.charge(latency.LoadHomeFetch, data)
	}

	// Case 4: migrate the line from its remote dirty owner. The owner's
	// copy is written back home and invalidated; the requester becomes
	// the sole recorded sharer.
	data := e.recallDirty(entry, addr)
	e.system.WriteMemory(addr, data)
	n.Regs[cpu].Write(reg, data)
	cache.Install(addr, data)
	entry.State = machine.Shared
	entry.Presence.Clear()
	entry.Presence.Add(node)
	return e.charge(latency.LoadDirtyMigration, data)
}

// Store performs one store-word access for (node, cpu), writing the
// processor's register to the global word address.
//
// A write hit takes exclusive ownership: every other cached copy is
// invalidated and the home directory becomes Dirty for the writer's node
// alone. A write miss is no-write-allocate: the value goes straight to
// home memory, every cached copy is invalidated, and the writer is not
// recorded as a sharer.
func (e *Engine) Store(node, cpu, addr, reg int) AccessResult {
	e.mustBeValidAccess(node, addr)

	n := e.system.Node(node)
	value := n.Regs[cpu].Read(reg)
	entry := e.system.Entry(addr)

	// Write hit.
	if _, ok := n.Caches[cpu].Probe(addr); ok {
		e.invalidateCopies(addr, node, cpu)
		n.Caches[cpu].Install(addr, value)
		entry.State = machine.Dirty
		entry.Presence.Clear()
		entry.Presence.Add(node)
		return e.charge(latency.StoreHit, value)
	}

	// Write miss. A Dirty entry downgrades to Shared; the invalidated
	// copies leave the presence set empty, a transient CheckCoherence
	// admits.
	e.system.WriteMemory(addr, value)
	e.invalidateCopies(addr, -1, -1)
	entry.Presence.Clear()
	if entry.State == machine.Dirty {
		entry.State = machine.Shared
	}
	return e.charge(latency.StoreMiss, value)
}

// charge adds the access's cost to the clock and builds its result.
func (e *Engine) charge(kind latency.AccessKind, value machine.Word) AccessResult {
	cycles := e.costs.CostOf(kind)
	e.clock += cycles
	return AccessResult{Case: kind, Cycles: cycles, Value: value}
}

func (e *Engine) mustBeValidAccess(node, addr int) {
	if node < 0 || node >= machine.NumNodes {
		panic(fmt.Sprintf("node %d out of range", node))
	}
	if !machine.ValidAddress(addr) {
		panic(fmt.Sprintf("address %d out of range", addr))
	}
}
