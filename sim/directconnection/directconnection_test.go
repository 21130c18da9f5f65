package directconnection

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/memsim/cachectrl/sim"
)

type sampleMsg struct {
	sim.MsgMeta
}

func (m *sampleMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

func (m *sampleMsg) Clone() sim.Msg {
	c := *m
	return &c
}

var _ = Describe("DirectConnection", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		port1    *MockPort
		port2    *MockPort
		conn     *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)

		port1 = NewMockPort(mockCtrl)
		port1.EXPECT().AsRemote().Return(sim.RemotePort("Port1")).AnyTimes()
		port2 = NewMockPort(mockCtrl)
		port2.EXPECT().AsRemote().Return(sim.RemotePort("Port2")).AnyTimes()

		conn = MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Conn")

		port1.EXPECT().SetConnection(conn)
		port2.EXPECT().SetConnection(conn)
		conn.PlugIn(port1)
		conn.PlugIn(port2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should deliver a message to its destination", func() {
		msg := &sampleMsg{}
		msg.Src = "Port1"
		msg.Dst = "Port2"

		port1.EXPECT().PeekOutgoing().Return(msg)
		port1.EXPECT().PeekOutgoing().Return(nil)
		port1.EXPECT().RetrieveOutgoing().Return(msg)
		port2.EXPECT().PeekOutgoing().Return(nil)
		port2.EXPECT().Deliver(msg).Return(nil)

		madeProgress := conn.Tick()

		Expect(madeProgress).To(BeTrue())
	})

	It("should stall when the destination cannot accept", func() {
		msg := &sampleMsg{}
		msg.Src = "Port1"
		msg.Dst = "Port2"

		port1.EXPECT().PeekOutgoing().Return(msg)
		port2.EXPECT().PeekOutgoing().Return(nil)
		port2.EXPECT().Deliver(msg).Return(sim.NewSendError())

		madeProgress := conn.Tick()

		Expect(madeProgress).To(BeFalse())
	})

	It("should make no progress when no message is pending", func() {
		port1.EXPECT().PeekOutgoing().Return(nil)
		port2.EXPECT().PeekOutgoing().Return(nil)

		madeProgress := conn.Tick()

		Expect(madeProgress).To(BeFalse())
	})

	It("should panic when the destination is not plugged in", func() {
		msg := &sampleMsg{}
		msg.Src = "Port1"
		msg.Dst = "Port3"

		port1.EXPECT().PeekOutgoing().Return(msg).AnyTimes()

		Expect(func() { conn.Tick() }).To(Panic())
	})

	It("should tick when a port sends", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(0))
		engine.EXPECT().Schedule(gomock.Any())

		conn.NotifySend()
	})
})
