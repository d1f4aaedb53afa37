// Package effect implements the traffic-light cycle: a one-time
// geometric selection of the three phase panels, and a per-tick driver
// that emits full-panel frames with variable inter-phase delays.
package effect

import (
	"time"

	"github.com/coreman2200/funtimes-trilight/internal/geometry"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
)

const (
	// DefaultTransition is the base phase interval, in milliseconds,
	// when the option provider supplies nothing.
	DefaultTransition = 50

	// The yellow phase is deliberately shorter than red and green.
	yellowScale = 0.4

	// minTransTime makes panel color changes effectively instantaneous.
	minTransTime = 1
)

// Frame is one per-panel output entry of a tick.
type Frame struct {
	PanelID   int
	Color     palette.RGB
	TransTime int
}

// Cycle is the owned per-process state of the effect: the slot
// assignment, the phase colors and the current phase index. It is
// constructed once and ticked by a single caller; calls are never
// concurrent by contract.
type Cycle struct {
	slices     []geometry.FrameSlice
	slots      [phaseCount]Slot
	colors     [phaseCount]palette.RGB
	transition int // base interval, ms
	phase      Phase
	buf        []Frame
}

// New builds a Cycle over the slices used for selection. The frame
// buffer enumerates those same slices in the same order every tick, so
// the panel listing is stable and complete. A transition <= 0 falls
// back to DefaultTransition.
func New(slices []geometry.FrameSlice, slots [phaseCount]Slot, colors [phaseCount]palette.RGB, transitionMs int) *Cycle {
	if transitionMs <= 0 {
		transitionMs = DefaultTransition
	}
	n := 0
	for _, fs := range slices {
		n += len(fs.PanelIDs)
	}
	return &Cycle{
		slices:     slices,
		slots:      slots,
		colors:     colors,
		transition: transitionMs,
		buf:        make([]Frame, n),
	}
}

// Phase reports the phase the next Tick will render.
func (c *Cycle) Phase() Phase { return c.phase }

// Slots reports the slot assignment.
func (c *Cycle) Slots() [phaseCount]Slot { return c.slots }

// Tick rebuilds the full frame buffer, lights the current phase's
// panel, and advances the phase. The returned delay is how long the
// caller should wait before the next Tick. The buffer is reused across
// ticks; callers needing to retain it must copy.
func (c *Cycle) Tick() ([]Frame, time.Duration) {
	// One entry per panel, slice order, everything black. Track where
	// each slot's panel landed; an ignored slot's index stays at zero
	// and is never written, because phase advance can't reach it.
	var at [phaseCount]int
	i := 0
	for _, fs := range c.slices {
		for _, id := range fs.PanelIDs {
			c.buf[i] = Frame{PanelID: id, TransTime: minTransTime}
			for p := Red; p < phaseCount; p++ {
				if c.slots[p].Valid && c.slots[p].PanelID == id {
					at[p] = i
				}
			}
			i++
		}
	}

	lit := &c.buf[at[c.phase]]
	lit.Color = c.colors[c.phase]
	lit.TransTime = minTransTime
	delay := c.delay(c.phase)

	// Advance, skipping ignored slots. Terminates because at most one
	// of the three slots can be ignored.
	for {
		c.phase = (c.phase + 1) % phaseCount
		if c.slots[c.phase].Valid {
			break
		}
	}

	return c.buf[:i], delay
}

func (c *Cycle) delay(p Phase) time.Duration {
	ms := c.transition
	if p == Yellow {
		ms = int(float64(c.transition) * yellowScale)
	}
	return time.Duration(ms) * time.Millisecond
}
