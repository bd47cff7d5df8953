package stats

import (
	"fmt"
	"io"
)

// A Summary is the final report of one simulation run. It echoes the
// cache configuration so the report is self-describing.
//
// MissRate and IPC are NaN when their denominator is zero, i.e. when no
// access was recorded. This is the one deliberate boundary policy of the
// package: an empty run reports "no meaningful rate", it does not crash.
type Summary struct {
	BlockSize      int
	Associativity  int
	Capacity       uint64
	MissPenalty    uint64
	DirtyWBPenalty uint64

	TotalAccesses   int64
	Reads           int64
	Writes          int64
	Hits            int64
	Misses          int64
	DirtyWritebacks int64
	Instructions    int64
	Cycles          int64

	MissRate float64
	IPC      float64
}

// WriteReport writes the plain-text report of the run.
func (s Summary) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"CACHE SETTINGS\n"+
			"       Cache Size (Bytes): %d\n"+
			"           Associativity : %d\n"+
			"       Block Size (Bytes): %d\n"+
			"    Miss Penalty (Cycles): %d\n"+
			"Dirty WB Penalty (Cycles): %d\n"+
			"\n"+
			"CACHE ACCESS STATS\n"+
			"TOTAL ACCESSES: %d\n"+
			"         READS: %d\n"+
			"        WRITES: %d\n"+
			"\n"+
			"CACHE MISS-RATE STATS\n"+
			"     MISS-RATE: %g\n"+
			"        MISSES: %d\n"+
			"          HITS: %d\n"+
			"\n"+
			"CACHE IPC STATS\n"+
			"           IPC: %g\n"+
			"  INSTRUCTIONS: %d\n"+
			"        CYCLES: %d\n"+
			"      DIRTY WB: %d\n",
		s.Capacity,
		s.Associativity,
		s.BlockSize,
		s.MissPenalty,
		s.DirtyWBPenalty,
		s.TotalAccesses,
		s.Reads,
		s.Writes,
		s.MissRate,
		s.Misses,
		s.Hits,
		s.IPC,
		s.Instructions,
		s.Cycles,
		s.DirtyWritebacks,
	)

	return err
}
