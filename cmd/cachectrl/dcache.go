package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memsim/cachectrl/analysis"
	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/mem/cache/dcache"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/sim/directconnection"
)

var dcacheCmd = &cobra.Command{
	Use:   "dcache",
	Short: "Run a data-cache load/store scenario.",
	Long: `dcache drives loads and stores through the data-cache/MMU, ` +
		`including a dirty eviction and an access to the peripheral ` +
		`outside the cached range, then dumps the touched memory words.`,
	Run: runDCache,
}

func init() {
	dcacheCmd.Flags().Bool("write-back", false,
		"use the write-back policy instead of write-through")
	dcacheCmd.Flags().Uint64("block-size", 4, "words per block")
	dcacheCmd.Flags().Uint64("num-blocks", 4, "blocks in the cache")

	rootCmd.AddCommand(dcacheCmd)
}

//nolint:funlen // scenario setup is sequential
func runDCache(cmd *cobra.Command, _ []string) {
	writeBack, _ := cmd.Flags().GetBool("write-back")
	blockSize, _ := cmd.Flags().GetUint64("block-size")
	numBlocks, _ := cmd.Flags().GetUint64("num-blocks")

	policy := dcache.WriteThrough
	if writeBack {
		policy = dcache.WriteBack
	}

	s := buildSimulation()
	defer s.Terminate()

	engine := s.GetEngine()

	busComp := bus.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Bus")

	mainMem := mem.NewStorage(1024)
	busComp.RegisterDevice(
		bus.NewMemoryDevice("MainMemory", 0, 1023, mainMem))

	peripheral := mem.NewStorage(256)
	busComp.RegisterDevice(
		bus.NewMemoryDevice("Peripheral", 2048, 2303, peripheral))

	dCache := dcache.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithBus(busComp).
		WithGeometry(cache.MakeGeometry(
			blockSize, numBlocks, cache.DirectMapped, 0, 1023)).
		WithWritePolicy(policy).
		Build("DCache")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Conn")

	cpuPort := sim.NewPort(nil, 4, 4, "CPU.Port")
	conn.PlugIn(cpuPort)
	conn.PlugIn(dCache.TopPort())

	s.RegisterComponent(busComp)
	s.RegisterComponent(dCache)

	perfLogger := analysis.NewDBPerfLogger(s.GetDataRecorder())
	portAnalyzer := analysis.MakePortAnalyzerBuilder().
		WithPerfLogger(perfLogger).
		WithTimeTeller(engine).
		WithPeriod(100 * sim.GHz.Period()).
		WithPort(dCache.TopPort()).
		Build()
	dCache.TopPort().AcceptHook(portAnalyzer)

	cpu := accessDriver{engine: engine, port: cpuPort, dCache: dCache}

	conflict := blockSize * numBlocks

	cpu.store(0x12, 1111)
	cpu.store(0x12+conflict, 2222)
	fmt.Printf("load  0x%03x -> %d\n", 0x12, cpu.load(0x12))
	fmt.Printf("load  0x%03x -> %d\n",
		0x12+conflict, cpu.load(0x12+conflict))

	cpu.store(2050, 3333)
	fmt.Printf("load  0x%03x -> %d (peripheral)\n", 2050, cpu.load(2050))

	word, err := mainMem.Read(0x12)
	if err != nil {
		panic(err)
	}

	fmt.Printf("main memory word 0x%03x = %d\n", 0x12, word)
}

type accessDriver struct {
	engine sim.Engine
	port   sim.Port
	dCache *dcache.Comp
}

func (d accessDriver) load(addr uint64) uint64 {
	req := mem.ReadReqBuilder{}.
		WithSrc(d.port.AsRemote()).
		WithDst(d.dCache.TopPort().AsRemote()).
		WithAddress(addr).
		Build()

	d.send(req)

	return d.port.RetrieveIncoming().(*mem.DataReadyRsp).Data
}

func (d accessDriver) store(addr, data uint64) {
	req := mem.WriteReqBuilder{}.
		WithSrc(d.port.AsRemote()).
		WithDst(d.dCache.TopPort().AsRemote()).
		WithAddress(addr).
		WithData(data).
		Build()

	d.send(req)
	d.port.RetrieveIncoming()
}

func (d accessDriver) send(req sim.Msg) {
	if err := d.port.Send(req); err != nil {
		panic("the CPU port rejected the request")
	}

	if err := d.engine.Run(); err != nil {
		panic(err)
	}
}
