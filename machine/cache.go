package machine

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// CacheLine is the dump view of one cache line.
type CacheLine struct {
	Valid bool
	Tag   uint32 // 4-bit tag field
	Data  Word
}

// Cache models one processor's private direct-mapped cache: four lines of
// one word each. Tag, valid-bit, and victim management use Akita cache
// components; line data rides in a side array indexed by set.
type Cache struct {
	directory *akitacache.DirectoryImpl
	data      [CacheLinesPerCPU]Word
}

// NewCache creates an empty cache. All lines start invalid with zero tags.
func NewCache() *Cache {
	return &Cache{
		directory: akitacache.NewDirectory(
			CacheLinesPerCPU,
			1, // direct-mapped
			WordSizeBytes,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// blockAddr converts a global word address to the byte address the Akita
// directory indexes by.
func blockAddr(addr int) uint64 {
	return uint64(addr) * WordSizeBytes
}

// Probe returns the cached word for the address if a valid line with a
// matching tag is present.
func (c *Cache) Probe(addr int) (Word, bool) {
	block := c.directory.Lookup(0, blockAddr(addr))
	if block == nil || !block.IsValid {
		return 0, false
	}
	return c.data[block.SetID], true
}

// Install places the word into the line the address maps to, setting the
// tag and valid bit. Any previous occupant is overwritten; callers decide
// about write-back before installing.
func (c *Cache) Install(addr int, data Word) {
	victim := c.directory.FindVictim(blockAddr(addr))
	victim.Tag = blockAddr(addr)
	victim.IsValid = true
	victim.IsDirty = false
	c.data[victim.SetID] = data
	c.directory.Visit(victim)
}

// Victim reports the valid line currently occupying the slot the address
// maps to, returning the global word address that line holds and its data.
// ok is false when the slot is invalid (nothing to write back).
func (c *Cache) Victim(addr int) (victimAddr int, data Word, ok bool) {
	victim := c.directory.FindVictim(blockAddr(addr))
	if victim == nil || !victim.IsValid {
		return 0, 0, false
	}
	return int(victim.Tag) / WordSizeBytes, c.data[victim.SetID], true
}

// Invalidate clears the valid bit of the line matching the address, if any.
// The tag and data are left in place, as in real hardware.
func (c *Cache) Invalidate(addr int) {
	block := c.directory.Lookup(0, blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Line returns the dump view of the line at the given cache index.
func (c *Cache) Line(index int) CacheLine {
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.SetID != index {
				continue
			}
			return CacheLine{
				Valid: block.IsValid,
				Tag:   uint32(block.Tag) / WordSizeBytes / CacheLinesPerCPU,
				Data:  c.data[index],
			}
		}
	}
	panic("cache line index out of range")
}
