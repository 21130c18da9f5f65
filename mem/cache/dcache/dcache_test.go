package dcache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/sim/directconnection"
)

var _ = Describe("DataCache", func() {
	var (
		engine     *sim.SerialEngine
		busComp    *bus.Comp
		mainMem    *mem.Storage
		peripheral *mem.Storage
		cpu        sim.Port
		dCache     *Comp
	)

	buildEnv := func(policy WritePolicy) {
		engine = sim.NewSerialEngine()

		busComp = bus.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Bus")

		mainMem = mem.NewStorage(1024)
		for addr := uint64(0); addr < 256; addr++ {
			Expect(mainMem.Write(addr, addr+100)).To(Succeed())
		}
		busComp.RegisterDevice(bus.NewMemoryDevice("Mem", 0, 1023, mainMem))

		peripheral = mem.NewStorage(256)
		busComp.RegisterDevice(
			bus.NewMemoryDevice("Peripheral", 2048, 2303, peripheral))

		dCache = MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithBus(busComp).
			WithGeometry(
				cache.MakeGeometry(4, 4, cache.DirectMapped, 0, 1023)).
			WithWritePolicy(policy).
			Build("DCache")

		conn := directconnection.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Conn")

		cpu = sim.NewPort(nil, 4, 4, "CPU.Port")
		conn.PlugIn(cpu)
		conn.PlugIn(dCache.TopPort())
	}

	read := func(addr uint64) uint64 {
		req := mem.ReadReqBuilder{}.
			WithSrc(cpu.AsRemote()).
			WithDst(dCache.TopPort().AsRemote()).
			WithAddress(addr).
			Build()

		Expect(cpu.Send(req)).To(BeNil())
		Expect(engine.Run()).To(Succeed())

		msg := cpu.RetrieveIncoming()
		Expect(msg).NotTo(BeNil())

		rsp := msg.(*mem.DataReadyRsp)
		Expect(rsp.RespondTo).To(Equal(req.ID))

		return rsp.Data
	}

	write := func(addr, data uint64) {
		req := mem.WriteReqBuilder{}.
			WithSrc(cpu.AsRemote()).
			WithDst(dCache.TopPort().AsRemote()).
			WithAddress(addr).
			WithData(data).
			Build()

		Expect(cpu.Send(req)).To(BeNil())
		Expect(engine.Run()).To(Succeed())

		msg := cpu.RetrieveIncoming()
		Expect(msg).NotTo(BeNil())

		rsp := msg.(*mem.WriteDoneRsp)
		Expect(rsp.RespondTo).To(Equal(req.ID))
	}

	memWord := func(addr uint64) uint64 {
		word, err := mainMem.Read(addr)
		Expect(err).To(BeNil())
		return word
	}

	Context("write-through", func() {
		BeforeEach(func() {
			buildEnv(WriteThrough)
		})

		It("should fill a block on a read miss", func() {
			Expect(read(0x12)).To(Equal(uint64(0x12 + 100)))
		})

		It("should serve repeated reads from the store", func() {
			read(0x12)
			missTime := engine.CurrentTime()

			Expect(read(0x13)).To(Equal(uint64(0x13 + 100)))
			hitDuration := engine.CurrentTime() - missTime

			Expect(float64(hitDuration)).
				To(BeNumerically("<", float64(missTime)))
		})

		It("should write the word through to memory", func() {
			write(0x12, 55)

			Expect(memWord(0x12)).To(Equal(uint64(55)))
			Expect(read(0x12)).To(Equal(uint64(55)))
		})

		It("should never leave dirty lines behind", func() {
			write(0x12, 55)
			// A conflicting block mapping to the same slot.
			Expect(read(0x12 + 16)).To(Equal(uint64(0x12 + 16 + 100)))

			// The first write already reached memory, so the eviction
			// must not change it.
			Expect(memWord(0x12)).To(Equal(uint64(55)))
		})
	})

	Context("write-back", func() {
		BeforeEach(func() {
			buildEnv(WriteBack)
		})

		It("should hold a written word without touching memory", func() {
			write(0x12, 55)

			Expect(memWord(0x12)).To(Equal(uint64(0x12 + 100)))
			Expect(read(0x12)).To(Equal(uint64(55)))
		})

		It("should write a dirty line back after eviction", func() {
			write(0x12, 55)

			// A conflicting block evicts the dirty line through the
			// victim buffer; the idle write-back then drains it.
			Expect(read(0x12 + 16)).To(Equal(uint64(0x12 + 16 + 100)))

			Expect(memWord(0x12)).To(Equal(uint64(55)))
		})

		It("should keep an evicted block readable", func() {
			write(0x12, 55)
			read(0x12 + 16)

			Expect(read(0x12)).To(Equal(uint64(55)))
			Expect(read(0x12 + 16)).To(Equal(uint64(0x12 + 16 + 100)))
		})
	})

	Context("peripheral access", func() {
		BeforeEach(func() {
			buildEnv(WriteThrough)
		})

		It("should forward out-of-range writes to the peripheral", func() {
			write(2050, 77)

			word, err := peripheral.Read(2)
			Expect(err).To(BeNil())
			Expect(word).To(Equal(uint64(77)))
		})

		It("should forward out-of-range reads to the peripheral", func() {
			Expect(peripheral.Write(2, 88)).To(Succeed())

			Expect(read(2050)).To(Equal(uint64(88)))
		})

		It("should bypass the cache store", func() {
			write(2050, 77)

			// A later in-range read of the same low bits must come from
			// main memory, not from any cached peripheral word.
			Expect(read(2)).To(Equal(uint64(2 + 100)))
		})
	})

	Context("builder", func() {
		It("should reject a fully-associative geometry", func() {
			Expect(func() {
				MakeBuilder().
					WithEngine(sim.NewSerialEngine()).
					WithGeometry(cache.MakeGeometry(
						4, 4, cache.FullyAssociative, 0, 1023)).
					Build("DCache")
			}).To(Panic())
		})
	})
})
