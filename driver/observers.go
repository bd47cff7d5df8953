package driver

import (
	"log"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/stats"
	"github.com/sarchlab/cachesim/trace"
)

// A LogObserver writes one line per access to a logger.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an observer that logs every access.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// ObserveAccess logs the access and its outcome.
func (o *LogObserver) ObserveAccess(access trace.Access, outcome cache.Outcome) {
	kind := "read"
	if access.IsWrite {
		kind = "write"
	}

	o.logger.Printf("%s, 0x%x, hit=%t, dirty_wb=%t\n",
		kind, access.Address, outcome.Hit, outcome.DirtyWriteback)
}

// accessEntry is one recorded access in the database.
type accessEntry struct {
	Sequence       int64
	Address        uint64
	SetID          int
	Tag            uint64
	IsWrite        bool
	Hit            bool
	DirtyWriteback bool
	Instructions   uint32
}

// summaryEntry is the recorded summary of a finished run.
type summaryEntry struct {
	Property string
	Value    float64
}

// A DBObserver records every access into a data recorder so a run can
// be queried after the fact.
type DBObserver struct {
	recorder datarecording.DataRecorder
	geometry cache.Geometry
	sequence int64
}

// NewDBObserver creates an observer that records accesses into the
// "accesses" table of the recorder.
func NewDBObserver(
	recorder datarecording.DataRecorder,
	geometry cache.Geometry,
) *DBObserver {
	o := &DBObserver{
		recorder: recorder,
		geometry: geometry,
	}

	o.recorder.CreateTable("accesses", accessEntry{})

	return o
}

// ObserveAccess records the access and its outcome.
func (o *DBObserver) ObserveAccess(access trace.Access, outcome cache.Outcome) {
	tag, setID := o.geometry.Decode(access.Address)
	o.sequence++

	o.recorder.InsertData("accesses", accessEntry{
		Sequence:       o.sequence,
		Address:        access.Address,
		SetID:          setID,
		Tag:            tag,
		IsWrite:        access.IsWrite,
		Hit:            outcome.Hit,
		DirtyWriteback: outcome.DirtyWriteback,
		Instructions:   access.Instructions,
	})
}

// RecordSummary writes the summary counters into the "summary" table
// and flushes the recorder.
func (o *DBObserver) RecordSummary(s stats.Summary) {
	o.recorder.CreateTable("summary", summaryEntry{})

	entries := []summaryEntry{
		{"total_accesses", float64(s.TotalAccesses)},
		{"reads", float64(s.Reads)},
		{"writes", float64(s.Writes)},
		{"hits", float64(s.Hits)},
		{"misses", float64(s.Misses)},
		{"miss_rate", s.MissRate},
		{"dirty_writebacks", float64(s.DirtyWritebacks)},
		{"instructions", float64(s.Instructions)},
		{"cycles", float64(s.Cycles)},
		{"ipc", s.IPC},
	}
	for _, e := range entries {
		o.recorder.InsertData("summary", e)
	}

	o.recorder.Flush()
}
