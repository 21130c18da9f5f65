package cache

import (
	"fmt"
	"math/bits"
)

// tapMasks holds one maximal-length feedback mask per register width. Each
// mask lists the exponents below width of a primitive polynomial over
// GF(2), constant term included, which the right-shifting Next requires for
// a full 2^width-1 period. The mask doubles as the reset seed, so the
// sequence from reset is fully reproducible.
var tapMasks = map[int]uint32{
	2:  0x3,     // x^2 + x + 1
	3:  0x5,     // x^3 + x^2 + 1
	4:  0x9,     // x^4 + x^3 + 1
	5:  0x9,     // x^5 + x^3 + 1
	6:  0x21,    // x^6 + x^5 + 1
	7:  0x41,    // x^7 + x^6 + 1
	8:  0x71,    // x^8 + x^6 + x^5 + x^4 + 1
	9:  0x21,    // x^9 + x^5 + 1
	10: 0x81,    // x^10 + x^7 + 1
	11: 0x201,   // x^11 + x^9 + 1
	12: 0x53,    // x^12 + x^6 + x^4 + x + 1
	13: 0x1B,    // x^13 + x^4 + x^3 + x + 1
	14: 0x2B,    // x^14 + x^5 + x^3 + x + 1
	15: 0x4001,  // x^15 + x^14 + 1
	16: 0xA011,  // x^16 + x^15 + x^13 + x^4 + 1
	17: 0x4001,  // x^17 + x^14 + 1
	18: 0x801,   // x^18 + x^11 + 1
	19: 0x47,    // x^19 + x^6 + x^2 + x + 1
}

// An LFSR is a Fibonacci linear-feedback shift register used to pick
// replacement victims. The period is 2^width - 1 before the sequence
// repeats.
type LFSR struct {
	width int
	mask  uint32
	state uint32
}

// NewLFSR creates a register of the given width. Widths outside [2, 19]
// have no tap mask and are rejected.
func NewLFSR(width int) *LFSR {
	mask, ok := tapMasks[width]
	if !ok {
		panic(fmt.Sprintf("no feedback mask for LFSR width %d", width))
	}

	return &LFSR{
		width: width,
		mask:  mask,
		state: mask,
	}
}

// Reset returns the register to its seed state.
func (l *LFSR) Reset() {
	l.state = l.mask
}

// State returns the current register content without advancing.
func (l *LFSR) State() uint32 {
	return l.state
}

// Next advances the register once and returns the new state.
func (l *LFSR) Next() uint32 {
	feedback := uint32(bits.OnesCount32(l.state&l.mask) & 1)
	l.state = (l.state >> 1) | (feedback << (l.width - 1))

	return l.state
}

// NextIndex advances once and returns the candidate slot for a cache with
// the given geometry: the low log2(numBlocks) bits of the new state,
// folded the same way the address decoder folds indexes.
func (l *LFSR) NextIndex(g Geometry) uint64 {
	index := uint64(l.Next()) & ((1 << g.indexBits) - 1)

	return g.FoldIndex(index)
}
