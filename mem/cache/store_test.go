package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var (
		geometry Geometry
		store    *Store
	)

	BeforeEach(func() {
		geometry = MakeGeometry(4, 2, DirectMapped, 0, 1023)
		store = NewStore(geometry)
	})

	It("should read zero from untouched slots", func() {
		Expect(store.Read(0, 0)).To(Equal(uint64(0)))
	})

	It("should hold back a write until the next sync", func() {
		store.Write(1, 2, 42)

		Expect(store.Read(1, 2)).To(Equal(uint64(0)))

		store.Sync()

		Expect(store.Read(1, 2)).To(Equal(uint64(42)))
	})

	It("should miss on invalid slots", func() {
		_, hit := store.Lookup(0x10, 0)

		Expect(hit).To(BeFalse())
	})

	It("should hit when the stored tag matches", func() {
		loc := geometry.Decode(0x10)
		store.SetTag(loc.Index, loc.Tag)

		index, hit := store.Lookup(0x10, 0)

		Expect(hit).To(BeTrue())
		Expect(index).To(Equal(loc.Index))
	})

	It("should miss when the stored tag differs", func() {
		loc := geometry.Decode(0x10)
		store.SetTag(loc.Index, loc.Tag)

		// Same index, different tag.
		_, hit := store.Lookup(0x10+geometry.BlockSize*geometry.NumBlocks, 0)

		Expect(hit).To(BeFalse())
	})

	It("should look up addresses whose raw index lies past the slots", func() {
		g := MakeGeometry(4, 5, DirectMapped, 0, 1023)
		s := NewStore(g)

		// Block address 7 folds to the last slot.
		index, hit := s.Lookup(7*4, 0)
		Expect(hit).To(BeFalse())
		Expect(index).To(Equal(uint64(4)))

		loc := g.Decode(7 * 4)
		s.SetTag(index, loc.Tag)

		_, hit = s.Lookup(7*4, 0)
		Expect(hit).To(BeTrue())
	})

	It("should check the candidate slot for associative lookups", func() {
		g := MakeGeometry(4, 4, FullyAssociative, 0, 1023)
		s := NewStore(g)

		loc := g.Decode(0x10)
		s.SetTag(3, loc.Tag)

		_, hit := s.Lookup(0x10, 0)
		Expect(hit).To(BeFalse())

		index, hit := s.Lookup(0x10, 3)
		Expect(hit).To(BeTrue())
		Expect(index).To(Equal(uint64(3)))
	})

	It("should track the dirty bit", func() {
		Expect(store.IsDirty(0)).To(BeFalse())

		store.SetDirty(0)
		Expect(store.IsDirty(0)).To(BeTrue())

		store.ClearDirty(0)
		Expect(store.IsDirty(0)).To(BeFalse())
	})

	It("should evict the line and clear the slot", func() {
		loc := geometry.Decode(0x10)
		store.SetTag(loc.Index, loc.Tag)
		store.SetDirty(loc.Index)
		store.Write(loc.Index, 0, 7)
		store.Sync()

		line := store.Evict(loc.Index)

		Expect(line.Tag).To(Equal(loc.Tag))
		Expect(line.Valid).To(BeTrue())
		Expect(line.Dirty).To(BeTrue())
		Expect(line.Words[0]).To(Equal(uint64(7)))

		Expect(store.IsValid(loc.Index)).To(BeFalse())
		Expect(store.IsDirty(loc.Index)).To(BeFalse())
	})
})

var _ = Describe("VictimBuffer", func() {
	var buf *VictimBuffer

	BeforeEach(func() {
		buf = NewVictimBuffer(4)
	})

	It("should start empty", func() {
		Expect(buf.IsValid()).To(BeFalse())
		Expect(buf.IsDirty()).To(BeFalse())
		Expect(buf.Holds(0)).To(BeFalse())
	})

	It("should hold a loaded line", func() {
		buf.Load(CacheLine{
			Tag:   5,
			Valid: true,
			Dirty: true,
			Words: []uint64{1, 2, 3, 4},
		})

		Expect(buf.Holds(5)).To(BeTrue())
		Expect(buf.IsDirty()).To(BeTrue())
		Expect(buf.Word(2)).To(Equal(uint64(3)))
	})

	It("should swap words in place", func() {
		buf.SetTag(5)
		buf.SetWord(1, 9)

		Expect(buf.Word(1)).To(Equal(uint64(9)))
	})

	It("should clear on invalidate", func() {
		buf.SetTag(5)
		buf.SetDirty()

		buf.Invalidate()

		Expect(buf.IsValid()).To(BeFalse())
		Expect(buf.IsDirty()).To(BeFalse())
	})
})
