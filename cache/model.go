package cache

import (
	"github.com/sarchlab/cachesim/trace"
)

// A Line is the bookkeeping state of one way of one set. Tag is
// meaningless while Valid is false.
type Line struct {
	Tag   uint64
	Valid bool
	Dirty bool
}

// An Outcome reports what a single probe did to the cache.
// DirtyWriteback is true iff the probe evicted a line that was dirty.
type Outcome struct {
	Hit            bool
	DirtyWriteback bool
}

// A Model is a set-associative cache that can replay memory accesses.
// Lines and ranks are flat arenas indexed setID*ways + wayID. The model
// exclusively owns both for the duration of a run.
type Model struct {
	geometry Geometry
	policy   ReplacementPolicy

	lines []Line
	ranks []int
}

// NewModel creates a model with the given geometry and the default rank
// replacement policy.
func NewModel(geometry Geometry) *Model {
	m := &Model{
		geometry: geometry,
		policy:   NewRankPolicy(),
	}
	m.Reset()

	return m
}

// Geometry returns the geometry the model was built with.
func (m *Model) Geometry() Geometry {
	return m.geometry
}

// Reset invalidates every line and zeroes all recency ranks.
func (m *Model) Reset() {
	numLines := m.geometry.NumSets * m.geometry.WayAssociativity
	m.lines = make([]Line, numLines)
	m.ranks = make([]int, numLines)
}

// Set returns a copy of the lines of one set for inspection.
func (m *Model) Set(setID int) []Line {
	lines, _ := m.set(setID)
	set := make([]Line, len(lines))
	copy(set, lines)

	return set
}

func (m *Model) set(setID int) (lines []Line, ranks []int) {
	ways := m.geometry.WayAssociativity
	base := setID * ways

	return m.lines[base : base+ways], m.ranks[base : base+ways]
}

// Probe replays one access against the cache and reports whether it hit
// and whether it forced a dirty write-back. Only the selected set is
// touched; all other sets are left as they were.
func (m *Model) Probe(access trace.Access) Outcome {
	tag, setID := m.geometry.Decode(access.Address)
	lines, ranks := m.set(setID)

	way := -1
	invalidWay := -1
	for i := range lines {
		if !lines[i].Valid {
			if invalidWay < 0 {
				invalidWay = i
			}
			continue
		}

		if lines[i].Tag == tag {
			way = i
			break
		}
	}

	if way >= 0 {
		// A write dirties the line; a read never cleans it.
		lines[way].Dirty = lines[way].Dirty || access.IsWrite
		m.policy.Touch(ranks, way)

		return Outcome{Hit: true}
	}

	dirtyWB := false
	if invalidWay >= 0 {
		way = invalidWay
		lines[way].Valid = true
	} else {
		way = m.policy.Victim(ranks)
		dirtyWB = lines[way].Dirty
	}

	lines[way].Tag = tag
	lines[way].Dirty = access.IsWrite
	m.policy.Touch(ranks, way)

	return Outcome{Hit: false, DirtyWriteback: dirtyWB}
}
