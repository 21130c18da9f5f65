package tracing

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/memsim/cachectrl/datarecording"
	"github.com/memsim/cachectrl/sim"
)

type fakeDomain struct {
	sim.HookableBase

	name string
}

func (d *fakeDomain) Name() string {
	return d.name
}

var _ = Describe("DBTracer", func() {
	var (
		db       *sql.DB
		recorder datarecording.DataRecorder
		reader   datarecording.DataReader
		tracer   *DBTracer
		domain   *fakeDomain
	)

	BeforeEach(func() {
		var err error
		db, err = sql.Open("sqlite3", ":memory:")
		Expect(err).To(BeNil())

		recorder = datarecording.NewRecorderWithDB(db)
		reader = datarecording.NewReaderWithDB(db)
		tracer = NewDBTracer(recorder)
		domain = &fakeDomain{name: "ICache"}

		CollectTrace(domain, tracer)
	})

	AfterEach(func() {
		db.Close()
	})

	It("should record state transitions", func() {
		TraceStateTransition(domain, 1.0, "idle", "request")
		TraceStateTransition(domain, 2.0, "request", "read1")
		recorder.Flush()

		reader.MapTable("fsm_transitions", StateTransition{})
		results, total, err := reader.Query(
			context.Background(), "fsm_transitions",
			datarecording.QueryParams{OrderBy: "Time"})

		Expect(err).To(BeNil())
		Expect(total).To(Equal(2))

		first := results[0].(*StateTransition)
		Expect(first.Component).To(Equal("ICache"))
		Expect(first.From).To(Equal("idle"))
		Expect(first.To).To(Equal("request"))
	})

	It("should record bus transactions", func() {
		TraceBusTransaction(domain, 3.0, "DCache", "blockWrite", 0x40, 7)
		recorder.Flush()

		reader.MapTable("bus_transactions", BusTransaction{})
		results, total, err := reader.Query(
			context.Background(), "bus_transactions",
			datarecording.QueryParams{})

		Expect(err).To(BeNil())
		Expect(total).To(Equal(1))

		txn := results[0].(*BusTransaction)
		Expect(txn.Master).To(Equal("DCache"))
		Expect(txn.Address).To(Equal(uint64(0x40)))
		Expect(txn.Data).To(Equal(uint64(7)))
	})

	It("should not build trace items without hooks", func() {
		bare := &fakeDomain{name: "Bare"}

		// No hook attached, so the call must be a no-op.
		TraceStateTransition(bare, 1.0, "idle", "request")
		recorder.Flush()

		reader.MapTable("fsm_transitions", StateTransition{})
		_, total, err := reader.Query(
			context.Background(), "fsm_transitions",
			datarecording.QueryParams{})

		Expect(err).To(BeNil())
		Expect(total).To(Equal(0))
	})
})
