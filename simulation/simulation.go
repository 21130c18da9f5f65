// Package simulation ties the engine, the data recorder, the tracers, and
// the monitor together, and keeps a registry of components and ports.
package simulation

import (
	"github.com/memsim/cachectrl/datarecording"
	"github.com/memsim/cachectrl/monitoring"
	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/tracing"
)

// A Simulation provides the services needed to define and run one
// simulation.
type Simulation struct {
	id     string
	engine sim.Engine

	recorder datarecording.DataRecorder
	monitor  *monitoring.Monitor
	tracer   *tracing.DBTracer

	components    []sim.Component
	compNameIndex map[string]int
	ports         []sim.Port
	portNameIndex map[string]int
}

// ID returns the unique ID of the simulation run.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine that drives the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder of the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.recorder
}

// GetMonitor returns the monitor of the simulation, nil when monitoring is
// disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetTracer returns the tracer that records state transitions and bus
// transactions.
func (s *Simulation) GetTracer() *tracing.DBTracer {
	return s.tracer
}

// RegisterComponent registers a component, attaches the tracer to it, and
// adds it to the monitor.
func (s *Simulation) RegisterComponent(c sim.Component) {
	name := c.Name()
	if _, found := s.compNameIndex[name]; found {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[name] = len(s.components) - 1

	for _, p := range c.Ports() {
		s.registerPort(p)
	}

	if domain, ok := c.(tracing.NamedHookable); ok {
		tracing.CollectTrace(domain, s.tracer)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

func (s *Simulation) registerPort(p sim.Port) {
	name := p.Name()
	if _, found := s.portNameIndex[name]; found {
		panic("port " + name + " already registered")
	}

	s.ports = append(s.ports, p)
	s.portNameIndex[name] = len(s.ports) - 1
}

// GetComponentByName returns the registered component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	index, found := s.compNameIndex[name]
	if !found {
		panic("component " + name + " is not registered")
	}

	return s.components[index]
}

// GetPortByName returns the registered port with the given name.
func (s *Simulation) GetPortByName(name string) sim.Port {
	index, found := s.portNameIndex[name]
	if !found {
		panic("port " + name + " is not registered")
	}

	return s.ports[index]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// Terminate flushes and closes the data recorder.
func (s *Simulation) Terminate() {
	s.recorder.Close()
}
