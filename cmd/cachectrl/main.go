// The cachectrl command runs demo scenarios of the cache controller
// family. Optional settings are read from the environment, with a .env
// file loaded when present:
//
//	CACHECTRL_MONITOR       "true" starts the monitoring server
//	CACHECTRL_MONITOR_PORT  port of the monitoring server
//	CACHECTRL_RECORDING     output file name of the recorded database
//	CACHECTRL_LOG_EVENTS    "true" logs every simulation event to stderr
package main

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

func main() {
	_ = godotenv.Load()

	execute()

	atexit.Exit(0)
}
