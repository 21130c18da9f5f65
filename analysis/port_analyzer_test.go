package analysis

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/sim"
)

type capturingLogger struct {
	entries []PerfAnalyzerEntry
}

func (l *capturingLogger) AddDataEntry(entry PerfAnalyzerEntry) {
	l.entries = append(l.entries, entry)
}

type fixedTime sim.VTimeInSec

func (t *fixedTime) CurrentTime() sim.VTimeInSec {
	return sim.VTimeInSec(*t)
}

var _ = Describe("PortAnalyzer", func() {
	var (
		logger   *capturingLogger
		now      fixedTime
		port     sim.Port
		analyzer *PortAnalyzer
	)

	BeforeEach(func() {
		logger = &capturingLogger{}
		now = 0
		port = sim.NewPort(nil, 4, 4, "Comp.Port")

		analyzer = MakePortAnalyzerBuilder().
			WithPerfLogger(logger).
			WithTimeTeller(&now).
			WithPeriod(1).
			WithPort(port).
			Build()
	})

	observe := func(pos *sim.HookPos, msg sim.Msg) {
		analyzer.Func(sim.HookCtx{
			Domain: port,
			Pos:    pos,
			Item:   msg,
		})
	}

	It("should batch traffic of one period", func() {
		req := mem.ReadReqBuilder{}.
			WithSrc(port.AsRemote()).
			WithDst("Other.Port").
			WithAddress(0x40).
			Build()

		now = 0.5
		observe(sim.HookPosPortMsgSend, req)
		observe(sim.HookPosPortMsgSend, req)

		// First message of the next period triggers the summary.
		now = 1.5
		observe(sim.HookPosPortMsgSend, req)

		Expect(logger.entries).To(HaveLen(2))
		Expect(logger.entries[0].Where).To(Equal("Comp.Port"))
		Expect(logger.entries[0].WhereRemote).To(Equal("Other.Port"))
		Expect(logger.entries[0].What).To(Equal("Outgoing"))

		var msgCount float64
		for _, e := range logger.entries {
			if e.Unit == "Msg" {
				msgCount = e.Value
			}
		}
		Expect(msgCount).To(Equal(2.0))
	})

	It("should separate incoming and outgoing traffic", func() {
		out := mem.ReadReqBuilder{}.
			WithSrc(port.AsRemote()).
			WithDst("Other.Port").
			Build()
		in := mem.DataReadyRspBuilder{}.
			WithSrc("Other.Port").
			WithDst(port.AsRemote()).
			Build()

		now = 0.25
		observe(sim.HookPosPortMsgSend, out)
		observe(sim.HookPosPortMsgRecvd, in)

		now = 1.25
		observe(sim.HookPosPortMsgSend, out)

		whats := make(map[string]bool)
		for _, e := range logger.entries {
			whats[e.What] = true
		}

		Expect(whats).To(HaveKey("Incoming"))
		Expect(whats).To(HaveKey("Outgoing"))
	})

	It("should ignore other hook positions", func() {
		req := mem.ReadReqBuilder{}.
			WithSrc(port.AsRemote()).
			WithDst("Other.Port").
			Build()

		observe(sim.HookPosPortMsgRetrieveIncoming, req)

		now = 5
		observe(sim.HookPosPortMsgSend, req)

		Expect(logger.entries).To(BeEmpty())
	})

	It("should require its collaborators", func() {
		Expect(func() {
			MakePortAnalyzerBuilder().Build()
		}).To(Panic())
	})
})
