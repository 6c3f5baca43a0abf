package machine

// Node aggregates one cc-NUMA node: two processors (each with a register
// file and a private cache), a local memory bank, and the directory
// entries for the words that bank is home to.
type Node struct {
	Regs      [CPUsPerNode]RegFile
	Caches    [CPUsPerNode]*Cache
	Memory    MemoryBank
	Directory [WordsPerNode]DirectoryEntry
}

func newNode() *Node {
	n := &Node{}
	for cpu := 0; cpu < CPUsPerNode; cpu++ {
		n.Caches[cpu] = NewCache()
	}
	return n
}
