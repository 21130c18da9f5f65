package dcache

import (
	"github.com/memsim/cachectrl/bus"
	"github.com/memsim/cachectrl/mem/cache"
	"github.com/memsim/cachectrl/scanchain"
	"github.com/memsim/cachectrl/sim"
)

// Builder can build data-cache controllers.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	bus      *bus.Comp
	geometry cache.Geometry
	policy   WritePolicy
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:   1 * sim.GHz,
		policy: WriteThrough,
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

// WithGeometry sets the cache geometry. The data cache is direct-mapped.
func (b Builder) WithGeometry(g cache.Geometry) Builder {
	b.geometry = g
	return b
}

// WithWritePolicy selects write-through or write-back.
func (b Builder) WithWritePolicy(p WritePolicy) Builder {
	b.policy = p
	return b
}

// Build creates the controller and plugs it into the bus.
func (b Builder) Build(name string) *Comp {
	if b.geometry.Associativity != cache.DirectMapped {
		panic("the data cache is direct-mapped")
	}

	c := new(Comp)
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.geometry = b.geometry
	c.policy = b.policy
	c.store = cache.NewStore(b.geometry)
	c.vb = cache.NewVictimBuffer(b.geometry.BlockSize)
	c.counter = cache.NewCounter(b.geometry.BlockSize)
	c.scan = scanchain.NewChain(16)
	c.out.Control = bus.NotDriving

	c.topPort = sim.NewPort(c, 4, 4, name+".TopPort")
	c.AddPort("Top", c.topPort)

	c.bus = b.bus
	c.bus.PlugIn(c)

	return c
}
