package coherence

import (
	"fmt"

	"github.com/sarchlab/dashsim/machine"
)

// evict writes back and unrecords the valid line currently occupying the
// slot addr maps to in (node, cpu)'s cache, if any. The line's global
// address is reconstructed from its tag and index; its data is flushed to
// home memory only when the home directory marks that word Dirty, since
// Shared and Uncached copies already match memory.
func (e *Engine) evict(node, cpu, addr int) {
	cache := e.system.Node(node).Caches[cpu]

	victimAddr, data, ok := cache.Victim(addr)
	if !ok {
		return
	}

	entry := e.system.Entry(victimAddr)
	if entry.State == machine.Dirty {
		e.system.WriteMemory(victimAddr, data)
	}

	cache.Invalidate(victimAddr)
	e.unrecord(entry, victimAddr, node)
}

// unrecord drops the node from the entry's presence set once it holds no
// valid copy of the word, draining the state to Uncached when the set
// empties. Keeps presence tracking real copies across evictions.
func (e *Engine) unrecord(entry *machine.DirectoryEntry, addr, node int) {
	if e.system.Holders(addr).Contains(node) {
		// The sibling processor still caches the word.
		return
	}
	entry.Presence.Remove(node)
	if entry.Presence == 0 {
		entry.State = machine.Uncached
	}
}

// invalidateCopies clears every valid matching line system-wide, except
// the writer's own line at (skipNode, skipCPU), which the store is about
// to overwrite.
func (e *Engine) invalidateCopies(addr, skipNode, skipCPU int) {
	for id := 0; id < machine.NumNodes; id++ {
		for cpu := 0; cpu < machine.CPUsPerNode; cpu++ {
			if id == skipNode && cpu == skipCPU {
				continue
			}
			e.system.Node(id).Caches[cpu].Invalidate(addr)
		}
	}
}

// recallDirty locates the dirty owner's valid copy, invalidates every copy
// the owner holds (a sibling hit may have duplicated the line within the
// node), and returns the data. A directory that says Dirty with no live
// copy is a protocol bug, not a runtime condition, and fails the run
// immediately.
func (e *Engine) recallDirty(entry *machine.DirectoryEntry, addr int) machine.Word {
	owner, ok := entry.Presence.Sole()
	if !ok {
		panic(fmt.Sprintf("addr %d: dirty directory entry with presence %s",
			addr, entry.Presence.Bits()))
	}

	var data machine.Word
	found := false
	for cpu := 0; cpu < machine.CPUsPerNode; cpu++ {
		cache := e.system.Node(owner).Caches[cpu]
		if d, ok := cache.Probe(addr); ok {
			if !found {
				data = d
				found = true
			}
			cache.Invalidate(addr)
		}
	}

	if !found {
		panic(fmt.Sprintf("addr %d: dirty owner node %d holds no valid copy", addr, owner))
	}
	return data
}
