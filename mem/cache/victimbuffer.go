package cache

// A VictimBuffer holds one evicted line with its own tag and dirty bit.
// It decouples eviction from write-back: a dirty line waits here until the
// controller wins the bus, and a still-needed line can be swapped back
// into the store without a memory round trip.
type VictimBuffer struct {
	tag   uint64
	valid bool
	dirty bool
	words []uint64
}

// NewVictimBuffer creates a buffer for one line of blockSize words.
func NewVictimBuffer(blockSize uint64) *VictimBuffer {
	return &VictimBuffer{words: make([]uint64, blockSize)}
}

// Load places a full line into the buffer.
func (b *VictimBuffer) Load(line CacheLine) {
	b.tag = line.Tag
	b.valid = line.Valid
	b.dirty = line.Dirty
	copy(b.words, line.Words)
}

// Line returns a snapshot of the buffered content.
func (b *VictimBuffer) Line() CacheLine {
	line := CacheLine{
		Tag:   b.tag,
		Valid: b.valid,
		Dirty: b.dirty,
		Words: make([]uint64, len(b.words)),
	}
	copy(line.Words, b.words)

	return line
}

// Holds reports whether the buffer contains a valid line with the tag.
func (b *VictimBuffer) Holds(tag uint64) bool {
	return b.valid && b.tag == tag
}

// Word returns the buffered word at the offset.
func (b *VictimBuffer) Word(offset uint64) uint64 {
	return b.words[offset]
}

// SetWord stores a word at the offset.
func (b *VictimBuffer) SetWord(offset, word uint64) {
	b.words[offset] = word
}

// Tag returns the tag of the buffered line.
func (b *VictimBuffer) Tag() uint64 {
	return b.tag
}

// SetTag sets the tag of the buffered line and marks it valid.
func (b *VictimBuffer) SetTag(tag uint64) {
	b.tag = tag
	b.valid = true
}

// IsValid reports whether the buffer holds a line.
func (b *VictimBuffer) IsValid() bool {
	return b.valid
}

// Invalidate empties the buffer.
func (b *VictimBuffer) Invalidate() {
	b.valid = false
	b.dirty = false
}

// IsDirty reports whether the buffered line needs a write-back.
func (b *VictimBuffer) IsDirty() bool {
	return b.valid && b.dirty
}

// SetDirty marks the buffered line as modified.
func (b *VictimBuffer) SetDirty() {
	b.dirty = true
}

// ClearDirty marks the buffered line as clean.
func (b *VictimBuffer) ClearDirty() {
	b.dirty = false
}
