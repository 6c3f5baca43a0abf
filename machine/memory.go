package machine

import "fmt"

// MemoryBank is one node's slice of the globally addressed memory,
// sixteen words indexed locally 0-15.
type MemoryBank struct {
	words [WordsPerNode]Word
}

// Read returns the word at a local index.
func (m *MemoryBank) Read(index int) Word {
	m.mustBeValid(index)
	return m.words[index]
}

// Write sets the word at a local index.
func (m *MemoryBank) Write(index int, value Word) {
	m.mustBeValid(index)
	m.words[index] = value
}

func (m *MemoryBank) mustBeValid(index int) {
	if index < 0 || index >= WordsPerNode {
		panic(fmt.Sprintf("memory index %d out of range", index))
	}
}
