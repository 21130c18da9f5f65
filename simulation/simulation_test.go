package simulation

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/memsim/cachectrl/sim"
)

type idleTicker struct{}

func (idleTicker) Tick() bool {
	return false
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(
				filepath.Join(GinkgoT().TempDir(), "recording")).
			Build()
	})

	AfterEach(func() {
		s.Terminate()
	})

	newComp := func(name string) *sim.TickingComponent {
		c := sim.NewTickingComponent(
			name, s.GetEngine(), 1*sim.GHz, idleTicker{})
		c.AddPort("Top", sim.NewPort(c, 4, 4, name+".Top"))

		return c
	}

	It("should provide an engine and a recorder", func() {
		Expect(s.GetEngine()).NotTo(BeNil())
		Expect(s.GetDataRecorder()).NotTo(BeNil())
		Expect(s.GetTracer()).NotTo(BeNil())
		Expect(s.ID()).NotTo(BeEmpty())
	})

	It("should find components and ports by name", func() {
		comp := newComp("Comp1")
		s.RegisterComponent(comp)

		Expect(s.GetComponentByName("Comp1")).To(
			BeIdenticalTo(sim.Component(comp)))
		Expect(s.GetPortByName("Comp1.Top")).To(
			BeIdenticalTo(comp.GetPortByName("Top")))
	})

	It("should attach the tracer to registered components", func() {
		comp := newComp("Comp1")
		s.RegisterComponent(comp)

		Expect(comp.NumHooks()).To(Equal(1))
	})

	It("should reject duplicated component names", func() {
		s.RegisterComponent(newComp("Comp1"))

		Expect(func() {
			s.RegisterComponent(newComp("Comp1"))
		}).To(Panic())
	})

	It("should panic on unknown names", func() {
		Expect(func() { s.GetComponentByName("Missing") }).To(Panic())
		Expect(func() { s.GetPortByName("Missing") }).To(Panic())
	})
})
