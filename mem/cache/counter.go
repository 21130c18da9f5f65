package cache

// A Counter steps through the words of a block transfer. It wraps at the
// modulus so consecutive transfers can reuse it without resetting.
type Counter struct {
	modulus uint64
	value   uint64
}

// NewCounter creates a counter that counts [0, modulus).
func NewCounter(modulus uint64) *Counter {
	if modulus == 0 {
		panic("counter modulus must be positive")
	}

	return &Counter{modulus: modulus}
}

// Advance moves the counter one step forward.
func (c *Counter) Advance() {
	c.value = (c.value + 1) % c.modulus
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return c.value
}

// Done reports whether the counter is at the last word of the transfer.
func (c *Counter) Done() bool {
	return c.value == c.modulus-1
}

// Reset returns the counter to zero.
func (c *Counter) Reset() {
	c.value = 0
}
