// Package stats folds per-access probe outcomes into run-level counters
// and derives the summary metrics of a simulation.
package stats

import (
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/trace"
)

// Penalties are the fixed cycle costs charged per miss and per dirty
// write-back when deriving the cycle count.
type Penalties struct {
	MissPenalty    uint64
	DirtyWBPenalty uint64
}

// An Accumulator folds a stream of probe outcomes into monotonically
// increasing counters. It is created once per run and never reset
// mid-run.
type Accumulator struct {
	geometry  cache.Geometry
	penalties Penalties

	totalAccesses   int64
	writeAccesses   int64
	misses          int64
	dirtyWritebacks int64
	instructions    int64
}

// NewAccumulator creates an accumulator that echoes the given geometry
// and penalties in its summary.
func NewAccumulator(geometry cache.Geometry, penalties Penalties) *Accumulator {
	return &Accumulator{
		geometry:  geometry,
		penalties: penalties,
	}
}

// Record folds one access and its outcome into the counters. It must be
// called exactly once per access.
func (a *Accumulator) Record(access trace.Access, outcome cache.Outcome) {
	a.totalAccesses++
	a.instructions += int64(access.Instructions)

	if access.IsWrite {
		a.writeAccesses++
	}

	if !outcome.Hit {
		a.misses++
	}

	// Running total, not the last access's flag.
	if outcome.DirtyWriteback {
		a.dirtyWritebacks++
	}
}

// Summary derives the final metrics from the counters. It is a pure
// read; the accumulator can keep recording afterwards.
func (a *Accumulator) Summary() Summary {
	cycles := a.instructions +
		int64(a.penalties.MissPenalty)*a.misses +
		int64(a.penalties.DirtyWBPenalty)*a.dirtyWritebacks

	s := Summary{
		BlockSize:       a.geometry.BlockSize,
		Associativity:   a.geometry.WayAssociativity,
		Capacity:        a.geometry.ByteSize,
		MissPenalty:     a.penalties.MissPenalty,
		DirtyWBPenalty:  a.penalties.DirtyWBPenalty,
		TotalAccesses:   a.totalAccesses,
		Reads:           a.totalAccesses - a.writeAccesses,
		Writes:          a.writeAccesses,
		Hits:            a.totalAccesses - a.misses,
		Misses:          a.misses,
		DirtyWritebacks: a.dirtyWritebacks,
		Instructions:    a.instructions,
		Cycles:          cycles,
	}
	s.MissRate = ratio(float64(a.misses)*100, float64(a.totalAccesses))
	s.IPC = ratio(float64(a.instructions), float64(cycles))

	return s
}

// ratio returns num/den. With zero recorded accesses both operands are
// zero and the result is NaN.
func ratio(num, den float64) float64 {
	return num / den
}
