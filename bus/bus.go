// Package bus models the shared memory bus with daisy-chained arbitration.
package bus

import (
	"fmt"

	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/tracing"
)

// Comp is the shared bus. It ticks as a secondary component: within one
// simulated cycle every master commits its registered outputs first, then
// the bus samples them, so no transfer can observe a same-cycle update.
//
// Arbitration is a daisy chain. The token enters the ring at position 0
// and each node forwards it only if it is not requesting, so earlier
// positions starve later ones under contention. That is a property of the
// modeled hardware, not an accident.
type Comp struct {
	*sim.TickingComponent

	masters []Master
	devices []Device

	// owner is the ring position allowed to assert busy, -1 when the bus
	// is free. ownerWasBusy tracks whether the owner has started
	// transacting, so ownership can be released when busy deasserts.
	owner        int
	ownerWasBusy bool
}

// PlugIn appends a master to the arbitration ring. The position determines
// its priority.
func (c *Comp) PlugIn(m Master) {
	c.masters = append(c.masters, m)
}

// RegisterDevice adds a device to the address map. Ranges must not
// overlap.
func (c *Comp) RegisterDevice(d Device) {
	low, high := d.AddressRange()

	for _, other := range c.devices {
		otherLow, otherHigh := other.AddressRange()
		if low <= otherHigh && otherLow <= high {
			panic(fmt.Sprintf("device %s overlaps device %s",
				d.Name(), other.Name()))
		}
	}

	c.devices = append(c.devices, d)
}

// Wake schedules a bus evaluation for the current cycle. Masters call it
// when they start driving the bus.
func (c *Comp) Wake() {
	c.TickNow()
}

// Tick samples every master's outputs, routes the active transfer, and
// passes the arbitration token.
func (c *Comp) Tick() bool {
	outs := make([]Outputs, len(c.masters))
	anyRequesting := false
	anyBusy := false

	for i, m := range c.masters {
		outs[i] = m.BusOutputs()
		anyRequesting = anyRequesting || outs[i].Requesting
		anyBusy = anyBusy || outs[i].Busy
	}

	c.transfer(outs)
	c.arbitrate(outs, anyBusy)

	return anyRequesting || anyBusy
}

// transfer routes the busy master's word to or from the addressed device.
func (c *Comp) transfer(outs []Outputs) {
	for i, out := range outs {
		if !out.Busy {
			continue
		}

		if i != c.owner {
			panic(fmt.Sprintf("master %s asserts busy without the grant",
				c.masters[i].Name()))
		}

		c.ownerWasBusy = true

		if out.Control == NotDriving {
			continue
		}

		dev := c.deviceFor(out.Address)

		if out.Control.IsRead() {
			c.masters[i].DeliverWord(dev.Read(out.Address))
		} else {
			dev.Write(out.Address, out.Data)
		}

		tracing.TraceBusTransaction(c, c.CurrentTime(),
			c.masters[i].Name(), out.Control.String(),
			out.Address, out.Data)
	}
}

// arbitrate releases a finished owner and passes the token down the
// chain. The chain is combinational: as long as no transaction is in
// flight, the token re-enters the ring every cycle and the first
// requesting node keeps absorbing it, so a granted master that has not
// latched its grant yet is granted again rather than locked out.
func (c *Comp) arbitrate(outs []Outputs, anyBusy bool) {
	if c.owner >= 0 && c.ownerWasBusy && !outs[c.owner].Busy {
		c.owner = -1
		c.ownerWasBusy = false
	}

	grantIn := !anyBusy

	for i, m := range c.masters {
		granted := grantIn && outs[i].Requesting
		m.SetGrant(granted)

		if granted {
			c.owner = i
			c.ownerWasBusy = false
		}

		grantIn = grantIn && !outs[i].Requesting
	}
}

func (c *Comp) deviceFor(addr uint64) Device {
	for _, d := range c.devices {
		low, high := d.AddressRange()
		if addr >= low && addr <= high {
			return d
		}
	}

	panic(fmt.Sprintf("no device answers address 0x%x", addr))
}
