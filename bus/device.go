package bus

import (
	"github.com/memsim/cachectrl/mem"
)

// A Device answers bus transactions for an address range. It transfers one
// word per cycle.
type Device interface {
	Name() string

	// AddressRange returns the inclusive range the device answers for.
	AddressRange() (low, high uint64)

	Read(addr uint64) uint64
	Write(addr uint64, word uint64)
}

// A MemoryDevice is a word-addressed device backed by a Storage. It serves
// both as main memory and as the non-memory peripheral.
type MemoryDevice struct {
	name      string
	low, high uint64
	storage   *mem.Storage
}

// NewMemoryDevice creates a device answering [low, high] backed by the
// storage. Address low maps to storage word 0.
func NewMemoryDevice(
	name string,
	low, high uint64,
	storage *mem.Storage,
) *MemoryDevice {
	if low > high {
		panic("the low address is beyond the high address")
	}

	if storage.Capacity() < high-low+1 {
		panic("the storage is smaller than the address range")
	}

	return &MemoryDevice{
		name:    name,
		low:     low,
		high:    high,
		storage: storage,
	}
}

// Name returns the name of the device.
func (d *MemoryDevice) Name() string {
	return d.name
}

// AddressRange returns the inclusive range the device answers for.
func (d *MemoryDevice) AddressRange() (low, high uint64) {
	return d.low, d.high
}

// Read returns the word at the bus address.
func (d *MemoryDevice) Read(addr uint64) uint64 {
	word, err := d.storage.Read(addr - d.low)
	if err != nil {
		panic(err)
	}

	return word
}

// Write stores a word at the bus address.
func (d *MemoryDevice) Write(addr uint64, word uint64) {
	err := d.storage.Write(addr-d.low, word)
	if err != nil {
		panic(err)
	}
}
