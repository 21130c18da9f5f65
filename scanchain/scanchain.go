// Package scanchain provides the debug scan chain that controllers expose
// for inspection. The chain is a fixed-length boolean shift register; the
// controllers only shift bits through it and never interpret the content.
package scanchain

// A Chain is a fixed-length shift register of bits.
type Chain struct {
	bits []bool
}

// NewChain creates a chain of the given length with all bits cleared.
func NewChain(length int) *Chain {
	if length <= 0 {
		panic("the scan chain must have at least one bit")
	}

	return &Chain{bits: make([]bool, length)}
}

// Len returns the number of bits in the chain.
func (c *Chain) Len() int {
	return len(c.bits)
}

// ShiftIn shifts one bit into the front of the chain and returns the bit
// that falls out of the end.
func (c *Chain) ShiftIn(bit bool) bool {
	out := c.bits[len(c.bits)-1]

	copy(c.bits[1:], c.bits[:len(c.bits)-1])
	c.bits[0] = bit

	return out
}

// Peek returns the bit at the given position without shifting. Position 0
// is the bit most recently shifted in.
func (c *Chain) Peek(pos int) bool {
	return c.bits[pos]
}

// Snapshot returns a copy of the chain content, front first.
func (c *Chain) Snapshot() []bool {
	out := make([]bool, len(c.bits))
	copy(out, c.bits)

	return out
}
