// Package driver sequences a trace source through the cache model and
// into the statistics accumulator.
package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/stats"
	"github.com/sarchlab/cachesim/trace"
)

// An Observer is notified once per access after the cache has been
// probed.
type Observer interface {
	ObserveAccess(access trace.Access, outcome cache.Outcome)
}

// A Driver replays a trace against a cache model, one access at a time,
// feeding every outcome to the accumulator and to the observers.
type Driver struct {
	model       *cache.Model
	accumulator *stats.Accumulator
	observers   []Observer
}

// NewDriver creates a driver over a model and an accumulator.
func NewDriver(model *cache.Model, accumulator *stats.Accumulator) *Driver {
	return &Driver{
		model:       model,
		accumulator: accumulator,
	}
}

// AddObserver registers an observer to be called after every access.
func (d *Driver) AddObserver(o Observer) {
	d.observers = append(d.observers, o)
}

// Run consumes the source until it is exhausted. Each access completes,
// with all its state updates applied, before the next one is read. A
// source error other than io.EOF aborts the run.
func (d *Driver) Run(src trace.Source) error {
	for {
		access, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("trace source: %w", err)
		}

		outcome := d.model.Probe(access)
		d.accumulator.Record(access, outcome)

		for _, o := range d.observers {
			o.ObserveAccess(access, outcome)
		}
	}
}

// Summary returns the summary of everything recorded so far.
func (d *Driver) Summary() stats.Summary {
	return d.accumulator.Summary()
}
