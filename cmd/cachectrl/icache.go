package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/mem/cache/icache"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/sim/directconnection"
)

var icacheCmd = &cobra.Command{
	Use:   "icache",
	Short: "Run an instruction-cache fetch scenario.",
	Long: `icache streams a fetch trace through the instruction cache and ` +
		`reports the data and the cycles each fetch took. The trace ` +
		`revisits addresses so both misses and hits show up.`,
	Run: runICache,
}

func init() {
	icacheCmd.Flags().Bool("fully-associative", false,
		"use the fully-associative variant")
	icacheCmd.Flags().Uint64("block-size", 16, "words per block")
	icacheCmd.Flags().Uint64("num-blocks", 2, "blocks in the cache")

	rootCmd.AddCommand(icacheCmd)
}

func runICache(cmd *cobra.Command, _ []string) {
	fullyAssociative, _ := cmd.Flags().GetBool("fully-associative")
	blockSize, _ := cmd.Flags().GetUint64("block-size")
	numBlocks, _ := cmd.Flags().GetUint64("num-blocks")

	associativity := cache.DirectMapped
	if fullyAssociative {
		associativity = cache.FullyAssociative
	}

	s := buildSimulation()
	defer s.Terminate()

	engine := s.GetEngine()

	busComp := bus.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Bus")

	storage := mem.NewStorage(4096)
	for addr := uint64(0); addr < 4096; addr++ {
		if err := storage.Write(addr, addr*2+1); err != nil {
			panic(err)
		}
	}
	busComp.RegisterDevice(
		bus.NewMemoryDevice("MainMemory", 0, 4095, storage))

	iCache := icache.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithBus(busComp).
		WithGeometry(cache.MakeGeometry(
			blockSize, numBlocks, associativity, 0, 4095)).
		Build("ICache")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Conn")

	fetchPort := sim.NewPort(nil, 4, 4, "Fetcher.Port")
	conn.PlugIn(fetchPort)
	conn.PlugIn(iCache.TopPort())

	s.RegisterComponent(busComp)
	s.RegisterComponent(iCache)

	trace := []uint64{
		0x010, 0x011, 0x012,
		0x100, 0x101,
		0x010, 0x011,
		0x100,
	}

	for _, addr := range trace {
		data, cycles := fetch(engine, fetchPort, iCache, addr)
		fmt.Printf("fetch 0x%03x -> %6d  (%d cycles)\n", addr, data, cycles)
	}
}

func fetch(
	engine sim.Engine,
	port sim.Port,
	iCache *icache.Comp,
	addr uint64,
) (data uint64, cycles uint64) {
	start := engine.CurrentTime()

	req := mem.ReadReqBuilder{}.
		WithSrc(port.AsRemote()).
		WithDst(iCache.TopPort().AsRemote()).
		WithAddress(addr).
		Build()

	if err := port.Send(req); err != nil {
		panic("the fetch port rejected the request")
	}

	if err := engine.Run(); err != nil {
		panic(err)
	}

	rsp := port.RetrieveIncoming().(*mem.DataReadyRsp)
	elapsed := engine.CurrentTime() - start

	return rsp.Data, uint64(float64(elapsed) * 1e9)
}
