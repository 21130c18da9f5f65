// Package cache provides the building blocks shared by the cache
// controllers: address decoding, tag/data stores, the victim buffer, the
// replacement generator, and the block-transfer counter.
package cache

import (
	"fmt"
	"math/bits"
)

// Associativity selects how addresses map to cache slots.
type Associativity int

// The supported associativity modes.
const (
	DirectMapped Associativity = iota
	FullyAssociative
)

// A Location is the decomposition of an address within a cache.
type Location struct {
	Tag uint64

	// Index is only meaningful for direct-mapped geometries.
	Index uint64

	Offset uint64
}

// A Geometry describes the shape of a cache and decodes addresses for it.
// It has no mutable state.
type Geometry struct {
	BlockSize     uint64
	NumBlocks     uint64
	Associativity Associativity

	// LowAddr and HighAddr bound the cache-eligible address range,
	// inclusive on both ends. Anything outside belongs to a non-memory
	// peripheral.
	LowAddr  uint64
	HighAddr uint64

	offsetBits uint
	indexBits  uint
}

// MakeGeometry validates the parameters and creates a Geometry.
func MakeGeometry(
	blockSize, numBlocks uint64,
	associativity Associativity,
	lowAddr, highAddr uint64,
) Geometry {
	if blockSize == 0 || bits.OnesCount64(blockSize) != 1 {
		panic(fmt.Sprintf("block size %d is not a power of two", blockSize))
	}

	if numBlocks == 0 {
		panic("the cache must have at least one block")
	}

	if lowAddr > highAddr {
		panic("the low address is beyond the high address")
	}

	g := Geometry{
		BlockSize:     blockSize,
		NumBlocks:     numBlocks,
		Associativity: associativity,
		LowAddr:       lowAddr,
		HighAddr:      highAddr,
	}
	g.offsetBits = uint(bits.TrailingZeros64(blockSize))
	g.indexBits = uint(bits.Len64(numBlocks - 1))

	return g
}

// Decode splits an address into tag, index, and in-block offset. The index
// field is only populated for direct-mapped geometries.
func (g Geometry) Decode(addr uint64) Location {
	loc := Location{Offset: addr & (g.BlockSize - 1)}
	blockAddr := addr >> g.offsetBits

	if g.Associativity == DirectMapped {
		loc.Index = g.FoldIndex(blockAddr & ((1 << g.indexBits) - 1))
		loc.Tag = blockAddr >> g.indexBits
	} else {
		loc.Tag = blockAddr
	}

	return loc
}

// FoldIndex remaps any out-of-range index to numBlocks-1. Non-power-of-two
// block counts need more index bits than they have slots, so the raw index
// field can reach past the last slot. The fold aliases all such addresses
// onto the last slot rather than reading out of range.
func (g Geometry) FoldIndex(index uint64) uint64 {
	if index >= g.NumBlocks {
		return g.NumBlocks - 1
	}

	return index
}

// BlockAddrOf reconstructs the first word address of the block with the
// given tag and slot. For a folded index this reproduces the alias, not
// the original address.
func (g Geometry) BlockAddrOf(tag, index uint64) uint64 {
	if g.Associativity == DirectMapped {
		return (tag<<g.indexBits | index) << g.offsetBits
	}

	return tag << g.offsetBits
}

// InMainMemory reports whether an address is cache eligible.
func (g Geometry) InMainMemory(addr uint64) bool {
	return addr >= g.LowAddr && addr <= g.HighAddr
}

// BlockAddr returns the address of the first word of the block that holds
// the given address.
func (g Geometry) BlockAddr(addr uint64) uint64 {
	return addr &^ (g.BlockSize - 1)
}
