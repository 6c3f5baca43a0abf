// Package machine models the state of a four-node cc-NUMA multiprocessor:
// per-processor registers and direct-mapped caches, per-node memory banks,
// and per-word coherence directories.
//
// The package holds state and addressing only. All coherence-protocol
// mutation goes through the coherence package, driven strictly
// sequentially, so none of the types here carry locks.
package machine

// Word is the unit of storage in registers, memory, and cache lines.
type Word uint32

// Machine geometry. Sixty-four words of globally addressed memory are
// distributed evenly across four nodes.
const (
	NumNodes         = 4
	CPUsPerNode      = 2
	RegsPerCPU       = 2
	CacheLinesPerCPU = 4
	WordsPerNode     = 16
	TotalWords       = NumNodes * WordsPerNode

	WordBits      = 32
	TagBits       = 4
	WordSizeBytes = 4
)

// HomeNode returns the node whose memory bank holds the global word address.
func HomeNode(addr int) int {
	return addr / WordsPerNode
}

// LocalIndex returns the address's index within its home memory bank.
func LocalIndex(addr int) int {
	return addr % WordsPerNode
}

// CacheIndex returns the direct-mapped cache slot the address falls into.
// Every cache in the system uses the same index/tag split.
func CacheIndex(addr int) int {
	return addr % CacheLinesPerCPU
}

// TagOf returns the 4-bit cache tag for the address.
func TagOf(addr int) uint32 {
	return uint32(addr / CacheLinesPerCPU)
}

// AddressOf reconstructs a global word address from a tag and a cache index.
func AddressOf(tag uint32, cacheIndex int) int {
	return int(tag)*CacheLinesPerCPU + cacheIndex
}

// ValidAddress reports whether addr falls inside the global address space.
func ValidAddress(addr int) bool {
	return addr >= 0 && addr < TotalWords
}
