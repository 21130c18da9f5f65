package tracing

import (
	"github.com/memsim/cachectrl/datarecording"
	"github.com/memsim/cachectrl/sim"
)

const (
	stateTransitionTable = "fsm_transitions"
	busTransactionTable  = "bus_transactions"
)

// DBTracer records state transitions and bus transactions into a data
// recorder. One tracer can serve several domains.
type DBTracer struct {
	recorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer and its tables.
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	recorder.CreateTable(stateTransitionTable, StateTransition{})
	recorder.CreateTable(busTransactionTable, BusTransaction{})

	return &DBTracer{recorder: recorder}
}

// Func records the traced item.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosStateTransition:
		t.recorder.InsertData(stateTransitionTable, ctx.Item)
	case HookPosBusTransaction:
		t.recorder.InsertData(busTransactionTable, ctx.Item)
	}
}
