// Package tracing observes the simulated hardware through hooks. Domains
// report state-machine transitions and bus transactions; tracers attached
// to the domains record them.
package tracing

import (
	"github.com/memsim/cachectrl/sim"
)

// NamedHookable is something that has a name and accepts hooks.
type NamedHookable interface {
	sim.Named
	sim.Hookable

	NumHooks() int
	InvokeHook(sim.HookCtx)
}

// The positions at which trace hooks fire.
var (
	HookPosStateTransition = &sim.HookPos{Name: "StateTransition"}
	HookPosBusTransaction  = &sim.HookPos{Name: "BusTransaction"}
)

// A StateTransition is one state change of a controller state machine.
type StateTransition struct {
	Time      float64
	Component string
	From      string
	To        string
}

// A BusTransaction is one word moved over the bus.
type BusTransaction struct {
	Time    float64
	Master  string
	Control string
	Address uint64
	Data    uint64
}

// TraceStateTransition notifies the hooks on the domain that its state
// machine moved from one state to another.
func TraceStateTransition(
	domain NamedHookable,
	time sim.VTimeInSec,
	from, to string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	transition := StateTransition{
		Time:      float64(time),
		Component: domain.Name(),
		From:      from,
		To:        to,
	}

	domain.InvokeHook(sim.HookCtx{
		Domain: domain,
		Pos:    HookPosStateTransition,
		Item:   transition,
	})
}

// TraceBusTransaction notifies the hooks on the domain that one word moved
// over the bus.
func TraceBusTransaction(
	domain NamedHookable,
	time sim.VTimeInSec,
	master, control string,
	address, data uint64,
) {
	if domain.NumHooks() == 0 {
		return
	}

	transaction := BusTransaction{
		Time:    float64(time),
		Master:  master,
		Control: control,
		Address: address,
		Data:    data,
	}

	domain.InvokeHook(sim.HookCtx{
		Domain: domain,
		Pos:    HookPosBusTransaction,
		Item:   transaction,
	})
}

// CollectTrace attaches a tracer to a domain.
func CollectTrace(domain NamedHookable, tracer sim.Hook) {
	domain.AcceptHook(tracer)
}
