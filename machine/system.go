package machine

import "fmt"

// MemorySeedOffset is added to each global address to produce the
// deterministic initial memory pattern: memory[a] = a + 5.
const MemorySeedOffset = 5

// System is the whole four-node machine. It is created once at
// initialization and mutated only by the coherence engine for the
// lifetime of the run.
type System struct {
	nodes [NumNodes]*Node
}

// NewSystem creates the machine with all registers, caches, and
// directories zeroed and memory seeded with the deterministic pattern.
func NewSystem() *System {
	s := &System{}
	for id := 0; id < NumNodes; id++ {
		s.nodes[id] = newNode()
		for index := 0; index < WordsPerNode; index++ {
			addr := id*WordsPerNode + index
			s.nodes[id].Memory.Write(index, Word(addr+MemorySeedOffset))
		}
	}
	return s
}

// Node returns the node with the given id.
func (s *System) Node(id int) *Node {
	if id < 0 || id >= NumNodes {
		panic(fmt.Sprintf("node id %d out of range", id))
	}
	return s.nodes[id]
}

// Entry returns the home directory entry for a global word address.
func (s *System) Entry(addr int) *DirectoryEntry {
	return &s.Node(HomeNode(addr)).Directory[LocalIndex(addr)]
}

// ReadMemory reads a global word address from its home memory bank.
func (s *System) ReadMemory(addr int) Word {
	return s.Node(HomeNode(addr)).Memory.Read(LocalIndex(addr))
}

// WriteMemory writes a global word address to its home memory bank.
func (s *System) WriteMemory(addr int, value Word) {
	s.Node(HomeNode(addr)).Memory.Write(LocalIndex(addr), value)
}

// Holders returns the set of nodes holding at least one valid cache line
// with the matching tag for the address.
func (s *System) Holders(addr int) Presence {
	var p Presence
	for id := 0; id < NumNodes; id++ {
		for cpu := 0; cpu < CPUsPerNode; cpu++ {
			if _, ok := s.nodes[id].Caches[cpu].Probe(addr); ok {
				p.Add(id)
			}
		}
	}
	return p
}

// CheckCoherence validates the directory invariant for every memory word:
// the presence set equals exactly the set of nodes holding a valid
// matching cache line; Dirty means a single owner node; Shared copies
// equal home memory; Uncached means no copies. Presence is node-granular,
// so both processors of a Dirty owner may hold the line (a sibling hit on
// a dirty word duplicates it within the node).
//
// One relaxation is permitted: Shared with an empty presence set, the
// transient a no-write-allocate write miss leaves behind after it
// invalidates every copy.
func (s *System) CheckCoherence() error {
	for addr := 0; addr < TotalWords; addr++ {
		entry := s.Entry(addr)
		holders := s.Holders(addr)

		switch entry.State {
		case Uncached:
			if entry.Presence != 0 {
				return fmt.Errorf("addr %d: uncached with presence %s", addr, entry.Presence.Bits())
			}
			if holders != 0 {
				return fmt.Errorf("addr %d: uncached but cached on nodes %s", addr, holders.Bits())
			}

		case Shared:
			if entry.Presence != holders {
				return fmt.Errorf("addr %d: shared presence %s but copies on nodes %s",
					addr, entry.Presence.Bits(), holders.Bits())
			}
			memory := s.ReadMemory(addr)
			for id := 0; id < NumNodes; id++ {
				for cpu := 0; cpu < CPUsPerNode; cpu++ {
					data, ok := s.nodes[id].Caches[cpu].Probe(addr)
					if ok && data != memory {
						return fmt.Errorf("addr %d: shared copy on node %d cpu %d is %d, memory is %d",
							addr, id, cpu, data, memory)
					}
				}
			}

		case Dirty:
			owner, ok := entry.Presence.Sole()
			if !ok {
				return fmt.Errorf("addr %d: dirty with presence %s", addr, entry.Presence.Bits())
			}
			if holders != entry.Presence {
				return fmt.Errorf("addr %d: dirty owned by node %d but copies on nodes %s",
					addr, owner, holders.Bits())
			}

		default:
			return fmt.Errorf("addr %d: invalid directory state %d", addr, entry.State)
		}
	}
	return nil
}
