package bus

// ControlCode is the two-bit transaction encoding a master drives on the
// bus.
type ControlCode int

// The bus transaction encodings. NotDriving marks an idle master; it is
// deliberately distinct from SingleRead's zero encoding.
const (
	NotDriving ControlCode = iota - 1
	SingleRead             // 0b00
	BlockRead              // 0b01
	BlockWrite             // 0b10
	SingleWrite            // 0b11
)

func (c ControlCode) String() string {
	switch c {
	case NotDriving:
		return "not-driving"
	case SingleRead:
		return "single-read"
	case BlockRead:
		return "block-read"
	case BlockWrite:
		return "block-write"
	case SingleWrite:
		return "single-write"
	}

	return "invalid"
}

// IsRead reports whether the code moves a word from a device to a master.
func (c ControlCode) IsRead() bool {
	return c == SingleRead || c == BlockRead
}

// IsWrite reports whether the code moves a word from a master to a device.
func (c ControlCode) IsWrite() bool {
	return c == SingleWrite || c == BlockWrite
}

// Outputs are the registered signals a master presents to the bus. The bus
// samples them after the master's tick has committed, so the bus never
// observes a half-updated transaction.
type Outputs struct {
	Requesting bool
	Busy       bool
	Control    ControlCode
	Address    uint64
	Data       uint64
}

// A Master is a node on the bus. The bus calls SetGrant and DeliverWord
// into the master's input latches; the master reads them on its next
// tick.
type Master interface {
	Name() string

	// BusOutputs returns the signals the master drives this cycle.
	BusOutputs() Outputs

	// SetGrant latches whether the master holds the arbitration token.
	SetGrant(granted bool)

	// DeliverWord latches a word read from a device.
	DeliverWord(word uint64)
}
