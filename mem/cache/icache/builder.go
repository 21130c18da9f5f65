package icache

import (
	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/scanchain"
	"github.com/memsim/cachectrl/sim"
)

// Builder can build instruction-cache controllers.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	bus       *bus.Comp
	geometry  cache.Geometry
	lfsrWidth int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		lfsrWidth: 8,
	}
}

// WithEngine sets the engine that drives the controller.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the tick frequency of the controller.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// WithBus sets the bus the controller arbitrates for.
func (b Builder) WithBus(busComp *bus.Comp) Builder {
	b.bus = busComp
	return b
}

// WithGeometry sets the cache geometry.
func (b Builder) WithGeometry(g cache.Geometry) Builder {
	b.geometry = g
	return b
}

// WithLFSRWidth sets the replacement generator width used by the
// fully-associative variant.
func (b Builder) WithLFSRWidth(width int) Builder {
	b.lfsrWidth = width
	return b
}

// Build creates the controller and plugs it into the bus.
func (b Builder) Build(name string) *Comp {
	c := new(Comp)
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.geometry = b.geometry
	c.store = cache.NewStore(b.geometry)
	c.counter = cache.NewCounter(b.geometry.BlockSize)
	c.scan = scanchain.NewChain(16)
	c.out.Control = bus.NotDriving

	if b.geometry.Associativity == cache.FullyAssociative {
		c.lfsr = cache.NewLFSR(b.lfsrWidth)
	}

	c.topPort = sim.NewPort(c, 4, 4, name+".TopPort")
	c.AddPort("Top", c.topPort)

	c.bus = b.bus
	c.bus.PlugIn(c)

	return c
}
