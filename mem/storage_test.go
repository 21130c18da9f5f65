package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Storage", func() {
	var storage *Storage

	BeforeEach(func() {
		storage = NewStorage(4096)
	})

	It("should read zero from untouched words", func() {
		word, err := storage.Read(100)

		Expect(err).To(BeNil())
		Expect(word).To(Equal(uint64(0)))
	})

	It("should read back what was written", func() {
		err := storage.Write(100, 0xdeadbeef)
		Expect(err).To(BeNil())

		word, err := storage.Read(100)
		Expect(err).To(BeNil())
		Expect(word).To(Equal(uint64(0xdeadbeef)))
	})

	It("should refuse access beyond the capacity", func() {
		_, err := storage.Read(4096)
		Expect(err).NotTo(BeNil())

		err = storage.Write(4096, 1)
		Expect(err).NotTo(BeNil())
	})

	It("should read and write blocks across page boundaries", func() {
		words := []uint64{1, 2, 3, 4}

		err := storage.WriteBlock(1022, words)
		Expect(err).To(BeNil())

		read, err := storage.ReadBlock(1022, 4)
		Expect(err).To(BeNil())
		Expect(read).To(Equal(words))
	})
})
