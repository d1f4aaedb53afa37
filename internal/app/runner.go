// Package app wires the effect core to its collaborators: layout and
// slice acquisition at startup, the delay-driven tick loop, and the
// single shutdown path that releases everything once.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
	"github.com/coreman2200/funtimes-trilight/internal/geometry"
	"github.com/coreman2200/funtimes-trilight/internal/led"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
	"github.com/coreman2200/funtimes-trilight/internal/ws"
)

// Options collects everything the runner needs at construction.
type Options struct {
	Layout  *geometry.Layout
	Palette []palette.RGB

	// TransitionMs is the base phase interval; <= 0 uses the effect
	// default.
	TransitionMs int

	// SliceTolerance in mm; <= 0 uses the geometry default.
	SliceTolerance float64

	Driver led.Driver // optional
	State  *ws.State  // optional preview fan-out
}

// Runner owns the cycle state for the process lifetime. All calls into
// the core happen from the single Run goroutine.
type Runner struct {
	cycle  *effect.Cycle
	slices *geometry.SliceSet
	drv    led.Driver
	state  *ws.State

	closeOnce sync.Once
	closeErr  error
}

// NewRunner performs the one-time initialization: orient the layout,
// slice it, select the three phase slots and build the cycle.
func NewRunner(opts Options) *Runner {
	lay := opts.Layout
	lay.Rotate()

	set := geometry.Slice(lay, opts.SliceTolerance)
	slots := effect.SelectSlots(lay, set.Slices())
	colors := palette.PhaseColors(opts.Palette)
	cycle := effect.New(set.Slices(), slots, colors, opts.TransitionMs)

	for p, s := range slots {
		ev := log.Info().Str("phase", effect.Phase(p).String())
		if s.Valid {
			ev.Int("panel", s.PanelID).Msg("slot assigned")
		} else {
			ev.Msg("slot ignored")
		}
	}

	return &Runner{
		cycle:  cycle,
		slices: set,
		drv:    opts.Driver,
		state:  opts.State,
	}
}

// Cycle exposes the owned cycle state, mainly for headless tools.
func (r *Runner) Cycle() *effect.Cycle { return r.cycle }

// Run ticks the cycle until ctx is done. Each tick's returned delay
// schedules the next one; there is no fixed frame rate.
func (r *Runner) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			frame, delay := r.cycle.Tick()
			if r.drv != nil {
				if err := r.drv.Write(frame); err != nil {
					log.Warn().Err(err).Msg("driver write")
				}
			}
			if r.state != nil {
				r.state.Broadcast(frame, delay)
			}
			timer.Reset(delay)
		}
	}
}

// Close releases the slice data and the driver. Only the first call
// does anything; later calls return the first result.
func (r *Runner) Close() error {
	r.closeOnce.Do(func() {
		r.slices.Release()
		if r.drv != nil {
			r.closeErr = r.drv.Close()
		}
	})
	return r.closeErr
}
