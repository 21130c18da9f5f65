// Package icache implements the instruction-cache controller, in
// direct-mapped and fully-associative variants.
package icache

import (
	"fmt"

	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/scanchain"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/tracing"
)

type state int

const (
	stateIdle state = iota
	stateRequest
	stateRead1
	stateRead2
	stateRead3
	statePass
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRequest:
		return "request"
	case stateRead1:
		return "read1"
	case stateRead2:
		return "read2"
	case stateRead3:
		return "read3"
	case statePass:
		return "pass"
	}

	return "invalid"
}

// Comp is the instruction-cache controller. It serves reads from its
// store on a hit and streams a block from main memory over the bus on a
// miss. The fully-associative variant picks the victim slot with an LFSR.
type Comp struct {
	*sim.TickingComponent

	topPort sim.Port
	bus     *bus.Comp

	geometry cache.Geometry
	store    *cache.Store
	lfsr     *cache.LFSR
	counter  *cache.Counter
	scan     *scanchain.Chain

	state state

	// trigger is the latched request. A request is latched one tick and
	// acted on the next, so the trigger fires exactly once per request.
	trigger *mem.ReadReq

	index     uint64
	candidate uint64

	// Registered bus outputs and input latches. The bus samples out after
	// this component's tick and writes the latches; both sides only ever
	// see the other's previous-cycle state.
	out        bus.Outputs
	grantLatch bool
	wordLatch  uint64
}

// TopPort returns the port that accepts fetch requests.
func (c *Comp) TopPort() sim.Port {
	return c.topPort
}

// ScanChain returns the debug scan chain. The controller never interprets
// the chain content.
func (c *Comp) ScanChain() *scanchain.Chain {
	return c.scan
}

// Paused reports whether the controller is stalling the fetcher. It is
// asserted in every state except idle.
func (c *Comp) Paused() bool {
	return c.state != stateIdle
}

// BusOutputs returns the signals driven on the bus this cycle.
func (c *Comp) BusOutputs() bus.Outputs {
	return c.out
}

// SetGrant latches the arbitration token state for the next tick.
func (c *Comp) SetGrant(granted bool) {
	c.grantLatch = granted
}

// DeliverWord latches a word read from main memory for the next tick.
func (c *Comp) DeliverWord(word uint64) {
	c.wordLatch = word
}

// Tick advances the controller state machine by one cycle.
func (c *Comp) Tick() bool {
	c.store.Sync()

	prev := c.state
	madeProgress := c.step()

	if c.state != prev {
		tracing.TraceStateTransition(
			c, c.CurrentTime(), prev.String(), c.state.String())
	}

	return madeProgress
}

func (c *Comp) step() bool {
	switch c.state {
	case stateIdle:
		return c.idle()
	case stateRequest:
		return c.request()
	case stateRead1:
		c.state = stateRead2
		return true
	case stateRead2:
		c.state = stateRead3
		return true
	case stateRead3:
		return c.read3()
	case statePass:
		return c.pass()
	}

	panic(fmt.Sprintf("invalid state %d", c.state))
}

func (c *Comp) idle() bool {
	if c.trigger == nil {
		return c.latchTrigger()
	}

	index, hit := c.store.Lookup(c.trigger.Address, c.candidate)
	c.index = index

	if hit {
		c.state = statePass
		return true
	}

	if c.geometry.Associativity == cache.FullyAssociative {
		c.index = c.lfsr.NextIndex(c.geometry)
		c.candidate = c.index
	}

	c.out.Requesting = true
	c.state = stateRequest
	c.bus.Wake()

	return true
}

func (c *Comp) latchTrigger() bool {
	msg := c.topPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	req, ok := msg.(*mem.ReadReq)
	if !ok {
		panic("the instruction cache only serves reads")
	}

	c.trigger = req

	return true
}

func (c *Comp) request() bool {
	if !c.grantLatch {
		return true
	}

	c.out.Requesting = false
	c.out.Busy = true
	c.out.Control = bus.BlockRead
	c.out.Address = c.geometry.BlockAddr(c.trigger.Address)
	c.counter.Reset()
	c.state = stateRead1

	return true
}

// read3 captures one word per cycle until the block is complete. The tag
// is only written with the terminal word, so the line never reads as
// valid while partially filled.
func (c *Comp) read3() bool {
	c.store.Write(c.index, c.counter.Value(), c.wordLatch)

	if c.counter.Done() {
		c.store.SetTag(c.index, c.geometry.Decode(c.trigger.Address).Tag)
		c.out.Busy = false
		c.out.Control = bus.NotDriving
		c.state = statePass

		return true
	}

	c.counter.Advance()
	c.out.Address++

	return true
}

func (c *Comp) pass() bool {
	offset := c.geometry.Decode(c.trigger.Address).Offset
	rsp := mem.DataReadyRspBuilder{}.
		WithSrc(c.topPort.AsRemote()).
		WithDst(c.trigger.Src).
		WithRspTo(c.trigger.ID).
		WithData(c.store.Read(c.index, offset)).
		Build()

	if err := c.topPort.Send(rsp); err != nil {
		return false
	}

	c.trigger = nil
	c.state = stateIdle

	return true
}
