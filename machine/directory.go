package machine

// DirectoryState is the coherence state of one memory word.
type DirectoryState uint8

// Directory states. The bit patterns match the 2-bit directory field in
// the machine's state dump.
const (
	Uncached DirectoryState = iota // no cached copies
	Shared                         // one or more copies, all equal to memory
	Dirty                          // exactly one copy, possibly newer than memory
)

// String returns the state name.
func (s DirectoryState) String() string {
	switch s {
	case Uncached:
		return "Uncached"
	case Shared:
		return "Shared"
	case Dirty:
		return "Dirty"
	default:
		return "Invalid"
	}
}

// Bits returns the 2-bit dump encoding: 00 uncached, 01 shared, 11 dirty.
func (s DirectoryState) Bits() string {
	switch s {
	case Shared:
		return "01"
	case Dirty:
		return "11"
	default:
		return "00"
	}
}

// Presence is the set of nodes currently caching a memory word, one bit
// per node.
type Presence uint8

// Add inserts a node into the set.
func (p *Presence) Add(node int) {
	*p |= 1 << node
}

// Remove deletes a node from the set.
func (p *Presence) Remove(node int) {
	*p &^= 1 << node
}

// Clear empties the set.
func (p *Presence) Clear() {
	*p = 0
}

// Contains reports whether the node is in the set.
func (p Presence) Contains(node int) bool {
	return p&(1<<node) != 0
}

// Len returns the number of nodes in the set.
func (p Presence) Len() int {
	n := 0
	for node := 0; node < NumNodes; node++ {
		if p.Contains(node) {
			n++
		}
	}
	return n
}

// Sole returns the single member of the set. ok is false unless the set
// holds exactly one node.
func (p Presence) Sole() (node int, ok bool) {
	if p.Len() != 1 {
		return 0, false
	}
	for node := 0; node < NumNodes; node++ {
		if p.Contains(node) {
			return node, true
		}
	}
	return 0, false
}

// Bits returns the 4-bit dump encoding, node 0 leftmost.
func (p Presence) Bits() string {
	buf := make([]byte, NumNodes)
	for node := 0; node < NumNodes; node++ {
		if p.Contains(node) {
			buf[node] = '1'
		} else {
			buf[node] = '0'
		}
	}
	return string(buf)
}

// DirectoryEntry is the per-word coherence record kept by the word's home
// node: the sharing state plus the presence set.
type DirectoryEntry struct {
	State    DirectoryState
	Presence Presence
}
