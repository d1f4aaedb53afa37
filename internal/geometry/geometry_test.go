package geometry

import (
	"math"
	"path/filepath"
	"testing"
)

func TestShapeCentroid(t *testing.T) {
	s := Shape{Vertices: []Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}}
	c := s.Centroid()
	if c.X != 1 || c.Y != 1 {
		t.Fatalf("centroid = %#v, want (1,1)", c)
	}
}

func TestTriangleGridCentroids(t *testing.T) {
	l := TriangleGrid(1, 2, 4, 2, 1)
	if len(l.Panels) != 10 {
		t.Fatalf("panel count %d, want 10", len(l.Panels))
	}
	// Panels in the same column share a centroid X; ids ascend top-down.
	c4, _ := l.PanelCentroid(4) // first panel of column 2
	c5, _ := l.PanelCentroid(5)
	if math.Abs(c4.X-c5.X) > 1e-9 {
		t.Fatalf("column centroid X differs: %v vs %v", c4.X, c5.X)
	}
	if c4.Y <= c5.Y {
		t.Fatalf("lower id should sit higher: %v vs %v", c4.Y, c5.Y)
	}
}

func TestRotateAppliesOnce(t *testing.T) {
	l := TriangleGrid(1, 1)
	l.Orientation = 90

	before0 := l.Panels[0].Shape.Centroid()
	before1 := l.Panels[1].Shape.Centroid()

	l.Rotate()
	if l.Orientation != 0 {
		t.Fatalf("orientation not cleared: %v", l.Orientation)
	}
	after0 := l.Panels[0].Shape.Centroid()
	after1 := l.Panels[1].Shape.Centroid()

	// A 90 degree turn moves the horizontal pair onto a vertical axis.
	if math.Abs(after0.X-after1.X) > 1e-9 {
		t.Fatalf("expected equal X after rotation: %v vs %v", after0.X, after1.X)
	}
	if math.Abs((before1.X-before0.X)-(after1.Y-after0.Y)) > 1e-9 {
		t.Fatalf("rotation did not preserve spacing")
	}

	// Second call must be a no-op.
	l.Rotate()
	again0 := l.Panels[0].Shape.Centroid()
	if math.Abs(again0.X-after0.X) > 1e-9 || math.Abs(again0.Y-after0.Y) > 1e-9 {
		t.Fatalf("second Rotate moved panels")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")

	l := TriangleGrid(2, 3)
	l.Orientation = 60
	if err := Save(path, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Orientation != 60 || len(got.Panels) != len(l.Panels) {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	for i := range l.Panels {
		if got.Panels[i].ID != l.Panels[i].ID {
			t.Fatalf("panel %d id mismatch", i)
		}
	}
}

func TestLoadRejectsBadLayouts(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := Save(empty, &Layout{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(empty); err == nil {
		t.Fatal("expected error for empty layout")
	}

	dup := filepath.Join(dir, "dup.yaml")
	l := &Layout{Panels: []Panel{
		{ID: 7, Shape: triangleAt(0, 0, true)},
		{ID: 7, Shape: triangleAt(75, 0, false)},
	}}
	if err := Save(dup, l); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(dup); err == nil {
		t.Fatal("expected error for duplicate panel ids")
	}
}
