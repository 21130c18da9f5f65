package cache

import (
	"github.com/memsim/cachectrl/mem"
)

// A CacheLine is a snapshot of one cache slot.
type CacheLine struct {
	Tag   uint64
	Valid bool
	Dirty bool
	Words []uint64
}

type tagEntry struct {
	tag   uint64
	valid bool
	dirty bool
}

type pendingWrite struct {
	index  uint64
	offset uint64
	word   uint64
}

// A Store combines the tag and data arrays of a cache. Data writes model a
// synchronous write port: they stay pending until the owning controller
// calls Sync at the top of its next tick, so no reader observes a
// same-tick update.
type Store struct {
	geometry Geometry
	tags     []tagEntry
	data     *mem.Storage
	pending  []pendingWrite
}

// NewStore creates the tag and data arrays for the given geometry.
func NewStore(geometry Geometry) *Store {
	s := new(Store)
	s.geometry = geometry
	s.tags = make([]tagEntry, geometry.NumBlocks)
	s.data = mem.NewStorage(geometry.NumBlocks * geometry.BlockSize)

	return s
}

// Geometry returns the geometry the store was built for.
func (s *Store) Geometry() Geometry {
	return s.geometry
}

// Sync commits the writes registered during the previous tick. The owning
// controller must call it before reading any state in a new tick.
func (s *Store) Sync() {
	for _, w := range s.pending {
		err := s.data.Write(w.index*s.geometry.BlockSize+w.offset, w.word)
		if err != nil {
			panic(err)
		}
	}

	s.pending = s.pending[:0]
}

// Lookup reports the slot an address selects and whether the stored tag
// matches. Direct-mapped geometries derive the slot from the address;
// fully-associative geometries check the caller's candidate slot, which
// tracks the replacement generator.
func (s *Store) Lookup(addr, candidate uint64) (index uint64, hit bool) {
	loc := s.geometry.Decode(addr)

	if s.geometry.Associativity == DirectMapped {
		index = loc.Index
	} else {
		index = candidate
	}

	entry := s.tags[index]

	return index, entry.valid && entry.tag == loc.Tag
}

// Read returns the committed word at the slot and offset.
func (s *Store) Read(index, offset uint64) uint64 {
	word, err := s.data.Read(index*s.geometry.BlockSize + offset)
	if err != nil {
		panic(err)
	}

	return word
}

// Write registers a word to be stored at the slot and offset. The word
// becomes visible after the next Sync.
func (s *Store) Write(index, offset, word uint64) {
	s.pending = append(s.pending, pendingWrite{index, offset, word})
}

// Tag returns the tag stored at the slot.
func (s *Store) Tag(index uint64) uint64 {
	return s.tags[index].tag
}

// SetTag stores a tag at the slot and marks it valid.
func (s *Store) SetTag(index, tag uint64) {
	s.tags[index].tag = tag
	s.tags[index].valid = true
}

// IsValid reports whether the slot holds a line.
func (s *Store) IsValid(index uint64) bool {
	return s.tags[index].valid
}

// Invalidate clears the slot without touching the data array.
func (s *Store) Invalidate(index uint64) {
	s.tags[index] = tagEntry{}
}

// SetDirty marks the slot as modified.
func (s *Store) SetDirty(index uint64) {
	s.tags[index].dirty = true
}

// ClearDirty marks the slot as clean.
func (s *Store) ClearDirty(index uint64) {
	s.tags[index].dirty = false
}

// IsDirty reports whether the slot is modified.
func (s *Store) IsDirty(index uint64) bool {
	return s.tags[index].dirty
}

// Evict copies the committed line out of the slot and clears the slot for
// reuse.
func (s *Store) Evict(index uint64) CacheLine {
	entry := s.tags[index]
	line := CacheLine{
		Tag:   entry.tag,
		Valid: entry.valid,
		Dirty: entry.dirty,
		Words: make([]uint64, s.geometry.BlockSize),
	}

	for offset := uint64(0); offset < s.geometry.BlockSize; offset++ {
		line.Words[offset] = s.Read(index, offset)
	}

	s.tags[index] = tagEntry{}

	return line
}
