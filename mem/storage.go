// Package mem provides word-addressed storage and the memory access protocol.
package mem

import "errors"

// pageSize is the number of words in a lazily allocated storage page.
const pageSize = 1024

// A Storage keeps the words of the simulated memory.
//
// Storage allocates pages lazily. A word that has never been written reads
// as zero, which keeps every simulation run deterministic.
type Storage struct {
	capacity uint64
	pages    map[uint64][]uint64
}

// NewStorage creates a storage that can hold the given number of words.
func NewStorage(capacity uint64) *Storage {
	s := new(Storage)
	s.capacity = capacity
	s.pages = make(map[uint64][]uint64)

	return s
}

// Capacity returns the number of words the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

// Read returns the word at the given word address.
func (s *Storage) Read(addr uint64) (uint64, error) {
	if addr >= s.capacity {
		return 0, errors.New("address beyond the storage capacity")
	}

	page, ok := s.pages[addr/pageSize]
	if !ok {
		return 0, nil
	}

	return page[addr%pageSize], nil
}

// Write stores a word at the given word address.
func (s *Storage) Write(addr uint64, word uint64) error {
	if addr >= s.capacity {
		return errors.New("address beyond the storage capacity")
	}

	pageID := addr / pageSize
	page, ok := s.pages[pageID]
	if !ok {
		page = make([]uint64, pageSize)
		s.pages[pageID] = page
	}

	page[addr%pageSize] = word

	return nil
}

// ReadBlock returns n consecutive words starting at addr.
func (s *Storage) ReadBlock(addr, n uint64) ([]uint64, error) {
	words := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		w, err := s.Read(addr + i)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}

	return words, nil
}

// WriteBlock stores consecutive words starting at addr.
func (s *Storage) WriteBlock(addr uint64, words []uint64) error {
	for i, w := range words {
		if err := s.Write(addr+uint64(i), w); err != nil {
			return err
		}
	}

	return nil
}
