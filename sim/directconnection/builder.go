package directconnection

import "github.com/memsim/cachectrl/sim"

// Builder can build direct connections.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that the connection uses.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the frequency that the connection forwards messages.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// Build creates a new Comp.
func (b Builder) Build(name string) *Comp {
	c := new(Comp)
	c.TickingComponent =
		sim.NewSecondaryTickingComponent(name, b.engine, b.freq, c)
	c.portByRemote = make(map[sim.RemotePort]sim.Port)

	return c
}
