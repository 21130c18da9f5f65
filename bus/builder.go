package bus

import "github.com/memsim/cachectrl/sim"

// Builder can build buses.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that the bus uses.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the frequency of the bus.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// Build creates a new bus. The bus ticks as a secondary component so that
// it always samples masters after they have committed their cycle.
func (b Builder) Build(name string) *Comp {
	c := new(Comp)
	c.TickingComponent =
		sim.NewSecondaryTickingComponent(name, b.engine, b.freq, c)
	c.owner = -1

	return c
}
