// Package analysis collects periodic performance measurements, such as
// the traffic through a port, and feeds them to a performance logger.
package analysis

import (
	"github.com/memsim/cachectrl/datarecording"
)

// A PerfAnalyzerEntry is one measured value over one time span.
type PerfAnalyzerEntry struct {
	Start       float64
	End         float64
	Where       string
	WhereRemote string
	What        string
	EntryType   string
	Value       float64
	Unit        string
}

// PerfLogger accepts measured entries.
type PerfLogger interface {
	AddDataEntry(entry PerfAnalyzerEntry)
}

const perfTable = "perf_data"

// DBPerfLogger stores performance entries in a data recorder.
type DBPerfLogger struct {
	recorder datarecording.DataRecorder
}

// NewDBPerfLogger creates a DBPerfLogger and its table.
func NewDBPerfLogger(recorder datarecording.DataRecorder) *DBPerfLogger {
	recorder.CreateTable(perfTable, PerfAnalyzerEntry{})

	return &DBPerfLogger{recorder: recorder}
}

// AddDataEntry buffers one entry into the recorder.
func (l *DBPerfLogger) AddDataEntry(entry PerfAnalyzerEntry) {
	l.recorder.InsertData(perfTable, entry)
}
