package main

import (
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/memsim/cachectrl/sim"
	"github.com/memsim/cachectrl/simulation"
)

var rootCmd = &cobra.Command{
	Use:   "cachectrl",
	Short: "Cycle-stepped simulation of a small cache controller family.",
	Long: `cachectrl simulates the cache controllers of a small processor: ` +
		`an instruction cache, a unified data-cache/MMU, and the shared ` +
		`bus they arbitrate for. Each subcommand runs one demo scenario ` +
		`and records the traced activity into a SQLite database.`,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildSimulation creates a simulation configured from the environment.
func buildSimulation() *simulation.Simulation {
	b := simulation.MakeBuilder()

	if os.Getenv("CACHECTRL_MONITOR") == "true" {
		if portStr := os.Getenv("CACHECTRL_MONITOR_PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				panic("CACHECTRL_MONITOR_PORT is not a number")
			}

			b = b.WithMonitorPort(port)
		}
	} else {
		b = b.WithoutMonitoring()
	}

	if recording := os.Getenv("CACHECTRL_RECORDING"); recording != "" {
		b = b.WithOutputFileName(recording)
	}

	s := b.Build()

	if os.Getenv("CACHECTRL_LOG_EVENTS") == "true" {
		logger := log.New(os.Stderr, "", 0)
		s.GetEngine().AcceptHook(sim.NewEventLogger(logger))
	}

	return s
}
