// Package dcache implements the unified data-cache/MMU controller with
// write-through and write-back policies.
package dcache

import (
	"fmt"

	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/scanchain"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/tracing"
)

// WritePolicy selects how writes propagate to main memory.
type WritePolicy int

// The supported write policies.
const (
	WriteThrough WritePolicy = iota
	WriteBack
)

type state int

const (
	stateIdle state = iota
	stateMissRequest
	stateBufferBlockPlacement
	stateBusy1
	stateBusy2
	stateBusy3
	statePass
	stateBufferBlockSwitch
	stateWriteBackRequest
	stateWriteBack1
	stateWriteBack2
	statePassBack
	stateWriteThroughRequest
	stateWriteThrough1
	stateWriteThrough2
	stateNonMemRequest
	stateNonMemBusy1
	stateNonMemBusy2
)

var stateNames = map[state]string{
	stateIdle:                 "idle",
	stateMissRequest:          "missRequest",
	stateBufferBlockPlacement: "bufferBlockPlacement",
	stateBusy1:                "busy1",
	stateBusy2:                "busy2",
	stateBusy3:                "busy3",
	statePass:                 "pass",
	stateBufferBlockSwitch:    "bufferBlockSwitch",
	stateWriteBackRequest:     "writeBackRequest",
	stateWriteBack1:           "writeBack1",
	stateWriteBack2:           "writeBack2",
	statePassBack:             "passBack",
	stateWriteThroughRequest:  "writeThroughRequest",
	stateWriteThrough1:        "writeThrough1",
	stateWriteThrough2:        "writeThrough2",
	stateNonMemRequest:        "nonMemRequest",
	stateNonMemBusy1:          "nonMemBusy1",
	stateNonMemBusy2:          "nonMemBusy2",
}

func (s state) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "invalid"
}

// Comp is the data-cache/MMU controller. It serves reads and writes from
// its store, fills blocks over the bus on a miss, parks evicted dirty
// lines in a one-line victim buffer, and forwards out-of-range accesses
// to the non-memory peripheral.
type Comp struct {
	*sim.TickingComponent

	topPort sim.Port
	bus     *bus.Comp

	geometry cache.Geometry
	policy   WritePolicy
	store    *cache.Store
	vb       *cache.VictimBuffer
	counter  *cache.Counter
	scan     *scanchain.Chain

	state state

	// trigger is the latched request. A request is latched one tick and
	// acted on the next, so the trigger fires exactly once per request.
	// Port arrival order decides between a simultaneous read and write.
	trigger mem.AccessReq

	// index is the slot of the in-flight access; vbIndex is the home
	// slot of the line in the victim buffer.
	index   uint64
	vbIndex uint64

	// Registered bus outputs and input latches.
	out        bus.Outputs
	grantLatch bool
	wordLatch  uint64
}

// TopPort returns the port that accepts load/store requests.
func (c *Comp) TopPort() sim.Port {
	return c.topPort
}

// ScanChain returns the debug scan chain. The controller never interprets
// the chain content.
func (c *Comp) ScanChain() *scanchain.Chain {
	return c.scan
}

// Paused reports whether the controller is stalling the requester. The
// write-back branch runs un-paused because it never blocks the access
// that triggered it.
func (c *Comp) Paused() bool {
	switch c.state {
	case stateIdle, stateWriteBackRequest, stateWriteBack1,
		stateWriteBack2, statePassBack:
		return false
	}

	return true
}

// BusOutputs returns the signals driven on the bus this cycle.
func (c *Comp) BusOutputs() bus.Outputs {
	return c.out
}

// SetGrant latches the arbitration token state for the next tick.
func (c *Comp) SetGrant(granted bool) {
	c.grantLatch = granted
}

// DeliverWord latches a word read over the bus for the next tick.
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

//nolint:gocyclo // one arm per state
func (c *Comp) step() bool {
	switch c.state {
	case stateIdle:
		return c.idle()
	case stateMissRequest:
		return c.missRequest()
	case stateBufferBlockPlacement:
		return c.bufferBlockPlacement()
	case stateBusy1:
		c.state = stateBusy2
		return true
	case stateBusy2:
		c.state = stateBusy3
		return true
	case stateBusy3:
		return c.busy3()
	case statePass:
		return c.pass()
	case stateBufferBlockSwitch:
		return c.bufferBlockSwitch()
	case stateWriteBackRequest:
		return c.writeBackRequest()
	case stateWriteBack1:
		return c.writeBack1()
	case stateWriteBack2:
		return c.writeBack2()
	case statePassBack:
		return c.passBack()
	case stateWriteThroughRequest:
		return c.writeThroughRequest()
	case stateWriteThrough1:
		c.out.Control = bus.NotDriving
		c.state = stateWriteThrough2
		return true
	case stateWriteThrough2:
		return c.writeThrough2()
	case stateNonMemRequest:
		return c.nonMemRequest()
	case stateNonMemBusy1:
		c.out.Control = bus.NotDriving
		c.state = stateNonMemBusy2
		return true
	case stateNonMemBusy2:
		return c.nonMemBusy2()
	}

	panic(fmt.Sprintf("invalid state %d", c.state))
}

func (c *Comp) idle() bool {
	if c.trigger != nil {
		return c.serveTrigger()
	}

	if c.vb.IsDirty() {
		c.out.Requesting = true
		c.state = stateWriteBackRequest
		c.bus.Wake()

		return true
	}

	return c.latchTrigger()
}

func (c *Comp) latchTrigger() bool {
	msg := c.topPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	req, ok := msg.(mem.AccessReq)
	if !ok {
		panic("the data cache only serves reads and writes")
	}

	c.trigger = req

	return true
}

// serveTrigger applies the idle-state priority order: victim-buffer
// residency, miss, pending write-back, write-through hit write, and
// peripheral access.
func (c *Comp) serveTrigger() bool {
	addr := c.trigger.GetAddress()

	if !c.geometry.InMainMemory(addr) {
		c.out.Requesting = true
		c.state = stateNonMemRequest
		c.bus.Wake()

		return true
	}

	loc := c.geometry.Decode(addr)
	index, hit := c.store.Lookup(addr, 0)
	c.index = index

	if c.vb.Holds(loc.Tag) && c.vbIndex == index {
		c.counter.Reset()
		c.state = stateBufferBlockSwitch

		return true
	}

	if !hit {
		c.out.Requesting = true
		c.state = stateMissRequest
		c.bus.Wake()

		return true
	}

	if c.vb.IsDirty() {
		c.out.Requesting = true
		c.state = stateWriteBackRequest
		c.bus.Wake()

		return true
	}

	return c.serveHit(loc)
}

func (c *Comp) serveHit(loc cache.Location) bool {
	req, isWrite := c.trigger.(*mem.WriteReq)

	if !isWrite {
		if !c.respondData(c.store.Read(c.index, loc.Offset)) {
			return true
		}

		c.trigger = nil

		return true
	}

	c.store.Write(c.index, loc.Offset, req.Data)

	if c.policy == WriteThrough {
		c.out.Requesting = true
		c.state = stateWriteThroughRequest
		c.bus.Wake()

		return true
	}

	c.store.SetDirty(c.index)

	if !c.respondWriteDone() {
		return true
	}

	c.trigger = nil

	return true
}

func (c *Comp) missRequest() bool {
	if !c.grantLatch {
		return true
	}

	c.out.Requesting = false
	c.out.Busy = true

	if c.store.IsValid(c.index) && c.store.IsDirty(c.index) {
		c.counter.Reset()
		c.state = stateBufferBlockPlacement

		return true
	}

	c.startFill()

	return true
}

// bufferBlockPlacement copies the dirty target line into the victim
// buffer, one word per cycle, before the fill overwrites the slot.
func (c *Comp) bufferBlockPlacement() bool {
	offset := c.counter.Value()
	c.vb.SetWord(offset, c.store.Read(c.index, offset))

	if c.counter.Done() {
		line := c.store.Evict(c.index)
		c.vb.SetTag(line.Tag)
		if line.Dirty {
			c.vb.SetDirty()
		} else {
			c.vb.ClearDirty()
		}
		c.vbIndex = c.index

		c.startFill()

		return true
	}

	c.counter.Advance()

	return true
}

func (c *Comp) startFill() {
	c.out.Control = bus.BlockRead
	c.out.Address = c.geometry.BlockAddr(c.trigger.GetAddress())
	c.counter.Reset()
	c.state = stateBusy1
}

// busy3 captures one fill word per cycle. The tag is written with the
// terminal word only, and the fill leaves the line clean.
func (c *Comp) busy3() bool {
	c.store.Write(c.index, c.counter.Value(), c.wordLatch)

	if c.counter.Done() {
		loc := c.geometry.Decode(c.trigger.GetAddress())
		c.store.SetTag(c.index, loc.Tag)
		c.store.ClearDirty(c.index)
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
	loc := c.geometry.Decode(c.trigger.GetAddress())
	req, isWrite := c.trigger.(*mem.WriteReq)

	if isWrite {
		if c.policy == WriteThrough {
			// The fill turned the write into a hit; the next idle cycle
			// services it through the write-through path.
			c.state = stateIdle

			return true
		}

		c.store.Write(c.index, loc.Offset, req.Data)
		c.store.SetDirty(c.index)

		if !c.respondWriteDone() {
			return true
		}

		c.trigger = nil
		c.state = stateIdle

		return true
	}

	if !c.respondData(c.store.Read(c.index, loc.Offset)) {
		return true
	}

	c.trigger = nil
	c.state = stateIdle

	return true
}

// bufferBlockSwitch swaps the victim buffer and the store slot word by
// word, then swaps the tags and dirty bits with the terminal word.
func (c *Comp) bufferBlockSwitch() bool {
	offset := c.counter.Value()
	storeWord := c.store.Read(c.index, offset)
	c.store.Write(c.index, offset, c.vb.Word(offset))
	c.vb.SetWord(offset, storeWord)

	if c.counter.Done() {
		storeTag := c.store.Tag(c.index)
		storeDirty := c.store.IsDirty(c.index)

		c.store.SetTag(c.index, c.vb.Tag())
		if c.vb.IsDirty() {
			c.store.SetDirty(c.index)
		} else {
			c.store.ClearDirty(c.index)
		}

		c.vb.SetTag(storeTag)
		if storeDirty {
			c.vb.SetDirty()
		} else {
			c.vb.ClearDirty()
		}

		c.counter.Reset()
		c.state = stateIdle

		return true
	}

	c.counter.Advance()

	return true
}

func (c *Comp) writeBackRequest() bool {
	if !c.grantLatch {
		return true
	}

	c.out.Requesting = false
	c.out.Busy = true
	c.out.Control = bus.NotDriving
	c.counter.Reset()
	c.state = stateWriteBack1

	return true
}

// writeBack1 drives one victim-buffer word onto the bus.
func (c *Comp) writeBack1() bool {
	offset := c.counter.Value()
	c.out.Control = bus.BlockWrite
	c.out.Address = c.geometry.BlockAddrOf(c.vb.Tag(), c.vbIndex) + offset
	c.out.Data = c.vb.Word(offset)
	c.state = stateWriteBack2

	return true
}

func (c *Comp) writeBack2() bool {
	c.out.Control = bus.NotDriving

	if c.counter.Done() {
		c.state = statePassBack

		return true
	}

	c.counter.Advance()
	c.state = stateWriteBack1

	return true
}

func (c *Comp) passBack() bool {
	c.vb.ClearDirty()
	c.out.Busy = false
	c.state = stateIdle

	return true
}

func (c *Comp) writeThroughRequest() bool {
	if !c.grantLatch {
		return true
	}

	req := c.trigger.(*mem.WriteReq)

	c.out.Requesting = false
	c.out.Busy = true
	c.out.Control = bus.SingleWrite
	c.out.Address = req.Address
	c.out.Data = req.Data
	c.state = stateWriteThrough1

	return true
}

func (c *Comp) writeThrough2() bool {
	if !c.respondWriteDone() {
		return true
	}

	c.out.Busy = false
	c.trigger = nil
	c.state = stateIdle

	return true
}

func (c *Comp) nonMemRequest() bool {
	if !c.grantLatch {
		return true
	}

	c.out.Requesting = false
	c.out.Busy = true
	c.out.Address = c.trigger.GetAddress()

	if req, isWrite := c.trigger.(*mem.WriteReq); isWrite {
		c.out.Control = bus.SingleWrite
		c.out.Data = req.Data
	} else {
		c.out.Control = bus.SingleRead
	}

	c.state = stateNonMemBusy1

	return true
}

func (c *Comp) nonMemBusy2() bool {
	if _, isWrite := c.trigger.(*mem.WriteReq); isWrite {
		if !c.respondWriteDone() {
			return true
		}
	} else {
		if !c.respondData(c.wordLatch) {
			return true
		}
	}

	c.out.Busy = false
	c.trigger = nil
	c.state = stateIdle

	return true
}

func (c *Comp) respondData(word uint64) bool {
	rsp := mem.DataReadyRspBuilder{}.
		WithSrc(c.topPort.AsRemote()).
		WithDst(c.trigger.Meta().Src).
		WithRspTo(c.trigger.Meta().ID).
		WithData(word).
		Build()

	return c.topPort.Send(rsp) == nil
}

func (c *Comp) respondWriteDone() bool {
	rsp := mem.WriteDoneRspBuilder{}.
		WithSrc(c.topPort.AsRemote()).
		WithDst(c.trigger.Meta().Src).
		WithRspTo(c.trigger.Meta().ID).
		Build()

	return c.topPort.Send(rsp) == nil
}
