package analysis

import (
	"math"

	"github.com/tebeka/atexit"

	"github.com/memsim/cachectrl/sim"
)

type portTraffic struct {
	remotePort sim.RemotePort

	inBytes  int64
	inMsgs   int64
	outBytes int64
	outMsgs  int64
}

// PortAnalyzer is a hook that measures the traffic through a port, broken
// down by remote port. With a period set, it emits one batch of entries
// per period; otherwise it accumulates until the process exits.
type PortAnalyzer struct {
	PerfLogger
	sim.TimeTeller

	usePeriod bool
	period    sim.VTimeInSec
	port      sim.Port

	lastTime sim.VTimeInSec
	traffic  map[sim.RemotePort]portTraffic
}

// Func records the message that passed through the port.
func (a *PortAnalyzer) Func(ctx sim.HookCtx) {
	incoming := ctx.Pos == sim.HookPosPortMsgRecvd
	if !incoming && ctx.Pos != sim.HookPosPortMsgSend {
		return
	}

	msg, ok := ctx.Item.(sim.Msg)
	if !ok {
		return
	}

	now := a.CurrentTime()

	if a.usePeriod && now > a.periodEndTime(a.lastTime) {
		a.summarize()
	}

	if a.traffic == nil {
		a.traffic = make(map[sim.RemotePort]portTraffic)
	}

	remote := msg.Meta().Dst
	if incoming {
		remote = msg.Meta().Src
	}

	entry, found := a.traffic[remote]
	if !found {
		entry = portTraffic{remotePort: remote}
	}

	if incoming {
		entry.inBytes += int64(msg.Meta().TrafficBytes)
		entry.inMsgs++
	} else {
		entry.outBytes += int64(msg.Meta().TrafficBytes)
		entry.outMsgs++
	}

	a.traffic[remote] = entry
	a.lastTime = now
}

func (a *PortAnalyzer) summarize() {
	now := a.CurrentTime()

	startTime := sim.VTimeInSec(0)
	endTime := now

	if a.usePeriod {
		startTime = a.periodStartTime(a.lastTime)
		endTime = a.periodEndTime(a.lastTime)

		if endTime > now {
			endTime = now
		}
	}

	for _, entry := range a.traffic {
		perfEntry := PerfAnalyzerEntry{
			Start:       float64(startTime),
			End:         float64(endTime),
			Where:       a.port.Name(),
			WhereRemote: string(entry.remotePort),
			EntryType:   "Traffic",
		}

		if entry.inMsgs != 0 {
			perfEntry.What = "Incoming"

			perfEntry.Value = float64(entry.inBytes)
			perfEntry.Unit = "Byte"
			a.AddDataEntry(perfEntry)

			perfEntry.Value = float64(entry.inMsgs)
			perfEntry.Unit = "Msg"
			a.AddDataEntry(perfEntry)
		}

		if entry.outMsgs != 0 {
			perfEntry.What = "Outgoing"

			perfEntry.Value = float64(entry.outBytes)
			perfEntry.Unit = "Byte"
			a.AddDataEntry(perfEntry)

			perfEntry.Value = float64(entry.outMsgs)
			perfEntry.Unit = "Msg"
			a.AddDataEntry(perfEntry)
		}
	}

	a.traffic = make(map[sim.RemotePort]portTraffic)
}

func (a *PortAnalyzer) periodStartTime(t sim.VTimeInSec) sim.VTimeInSec {
	return sim.VTimeInSec(math.Floor(float64(t/a.period))) * a.period
}

func (a *PortAnalyzer) periodEndTime(t sim.VTimeInSec) sim.VTimeInSec {
	return a.periodStartTime(t) + a.period
}

// PortAnalyzerBuilder can build port analyzers.
type PortAnalyzerBuilder struct {
	perfLogger PerfLogger
	timeTeller sim.TimeTeller
	usePeriod  bool
	period     sim.VTimeInSec
	port       sim.Port
}

// MakePortAnalyzerBuilder creates a PortAnalyzerBuilder.
func MakePortAnalyzerBuilder() PortAnalyzerBuilder {
	return PortAnalyzerBuilder{}
}

// WithPerfLogger sets the logger that receives the entries.
func (b PortAnalyzerBuilder) WithPerfLogger(
	l PerfLogger,
) PortAnalyzerBuilder {
	b.perfLogger = l
	return b
}

// WithTimeTeller sets the source of the current time.
func (b PortAnalyzerBuilder) WithTimeTeller(
	t sim.TimeTeller,
) PortAnalyzerBuilder {
	b.timeTeller = t
	return b
}

// WithPeriod makes the analyzer emit one batch of entries per period.
func (b PortAnalyzerBuilder) WithPeriod(
	p sim.VTimeInSec,
) PortAnalyzerBuilder {
	b.usePeriod = true
	b.period = p

	return b
}

// WithPort sets the port to observe. The analyzer still needs to be
// attached with AcceptHook.
func (b PortAnalyzerBuilder) WithPort(p sim.Port) PortAnalyzerBuilder {
	b.port = p
	return b
}

// Build creates the PortAnalyzer.
func (b PortAnalyzerBuilder) Build() *PortAnalyzer {
	if b.perfLogger == nil {
		panic("PortAnalyzer requires a PerfLogger")
	}

	if b.timeTeller == nil {
		panic("PortAnalyzer requires a TimeTeller")
	}

	if b.port == nil {
		panic("PortAnalyzer requires a Port")
	}

	a := &PortAnalyzer{
		PerfLogger: b.perfLogger,
		TimeTeller: b.timeTeller,
		usePeriod:  b.usePeriod,
		period:     b.period,
		port:       b.port,
	}

	atexit.Register(func() { a.summarize() })

	return a
}
