package effect

import (
	"testing"
	"time"

	"github.com/coreman2200/funtimes-trilight/internal/geometry"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
)

func newTestCycle(t *testing.T, l *geometry.Layout, transitionMs int) (*Cycle, int) {
	t.Helper()
	set := geometry.Slice(l, 0)
	slots := SelectSlots(l, set.Slices())
	c := New(set.Slices(), slots, palette.PhaseColors(nil), transitionMs)
	return c, set.PanelCount()
}

func litEntries(frame []Frame) []Frame {
	var lit []Frame
	for _, f := range frame {
		if f.Color != palette.Black {
			lit = append(lit, f)
		}
	}
	return lit
}

func TestTickDelaysAsymmetric(t *testing.T) {
	c, _ := newTestCycle(t, geometry.TriangleGrid(1, 2, 4, 2, 1), 50)

	want := []time.Duration{
		50 * time.Millisecond, // red
		20 * time.Millisecond, // yellow: 0.4x base
		50 * time.Millisecond, // green
		50 * time.Millisecond,
		20 * time.Millisecond,
		50 * time.Millisecond,
	}
	for i, w := range want {
		_, delay := c.Tick()
		if delay != w {
			t.Fatalf("tick %d: delay %s, want %s", i, delay, w)
		}
	}
}

func TestTickFrameShape(t *testing.T) {
	l := geometry.TriangleGrid(1, 2, 4, 2, 1)
	c, panels := newTestCycle(t, l, 50)

	for i := 0; i < 9; i++ {
		frame, _ := c.Tick()
		if len(frame) != panels {
			t.Fatalf("tick %d: frame length %d, want %d", i, len(frame), panels)
		}
		lit := litEntries(frame)
		if len(lit) != 1 {
			t.Fatalf("tick %d: %d lit panels, want exactly 1", i, len(lit))
		}
		for _, f := range frame {
			if f.TransTime != 1 {
				t.Fatalf("tick %d: panel %d transTime %d, want 1", i, f.PanelID, f.TransTime)
			}
		}
	}
}

func TestTickCyclesThreePanels(t *testing.T) {
	l := geometry.TriangleGrid(1, 2, 4, 2, 1)
	c, _ := newTestCycle(t, l, 50)
	slots := c.Slots()

	wantColors := [3]palette.RGB{
		{R: 255},
		{R: 255, G: 255},
		{G: 255},
	}
	for i := 0; i < 6; i++ {
		p := Phase(i % 3)
		frame, _ := c.Tick()
		lit := litEntries(frame)[0]
		if lit.PanelID != slots[p].PanelID {
			t.Fatalf("tick %d: lit panel %d, want %d", i, lit.PanelID, slots[p].PanelID)
		}
		if lit.Color != wantColors[p] {
			t.Fatalf("tick %d: color %#v, want %#v", i, lit.Color, wantColors[p])
		}
	}
}

func TestTickSkipsIgnoredSlot(t *testing.T) {
	// Two stacked panels: yellow is ignored, so ticks alternate between
	// the red and green panels only.
	l := geometry.TriangleGrid(2)
	c, _ := newTestCycle(t, l, 50)
	slots := c.Slots()

	for i := 0; i < 8; i++ {
		frame, delay := c.Tick()
		if delay != 50*time.Millisecond {
			t.Fatalf("tick %d: delay %s, yellow should be unreachable", i, delay)
		}
		lit := litEntries(frame)
		if len(lit) != 1 {
			t.Fatalf("tick %d: %d lit panels, want 1", i, len(lit))
		}
		want := slots[Red].PanelID
		if i%2 == 1 {
			want = slots[Green].PanelID
		}
		if lit[0].PanelID != want {
			t.Fatalf("tick %d: lit panel %d, want %d", i, lit[0].PanelID, want)
		}
	}
}

func TestTickSinglePanelAllColors(t *testing.T) {
	l := geometry.TriangleGrid(1)
	c, _ := newTestCycle(t, l, 10)
	id := l.Panels[0].ID

	seen := map[palette.RGB]bool{}
	for i := 0; i < 3; i++ {
		frame, _ := c.Tick()
		lit := litEntries(frame)
		if len(lit) != 1 || lit[0].PanelID != id {
			t.Fatalf("tick %d: expected sole panel %d lit, got %#v", i, id, lit)
		}
		seen[lit[0].Color] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct colors on one panel, got %d", len(seen))
	}
}

func TestTickUserPaletteOverride(t *testing.T) {
	l := geometry.TriangleGrid(3)
	set := geometry.Slice(l, 0)
	slots := SelectSlots(l, set.Slices())

	user := []palette.RGB{{R: 1, G: 2, B: 3}}
	c := New(set.Slices(), slots, palette.PhaseColors(user), 50)

	frame, _ := c.Tick()
	lit := litEntries(frame)[0]
	if lit.Color != user[0] {
		t.Fatalf("red phase color %#v, want user override %#v", lit.Color, user[0])
	}
	// Remaining phases keep the defaults.
	frame, _ = c.Tick()
	if litEntries(frame)[0].Color != (palette.RGB{R: 255, G: 255}) {
		t.Fatalf("yellow phase lost its default")
	}
}

func TestZeroTransitionFallsBack(t *testing.T) {
	c, _ := newTestCycle(t, geometry.TriangleGrid(3), 0)
	_, delay := c.Tick()
	if delay != time.Duration(DefaultTransition)*time.Millisecond {
		t.Fatalf("delay %s, want default %dms", delay, DefaultTransition)
	}
}
