package geometry

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Triangle geometry of a standard panel, millimeters.
const (
	SideMM   = 150.0
	HeightMM = 129.9 // SideMM * sqrt(3)/2
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Shape is an oriented polygon. Panels are triangles, but nothing here
// depends on the vertex count.
type Shape struct {
	Vertices []Point `yaml:"vertices"`
}

// Centroid is the vertex mean.
func (s Shape) Centroid() Point {
	n := len(s.Vertices)
	if n == 0 {
		return Point{}
	}
	var c Point
	for _, v := range s.Vertices {
		c.X += v.X
		c.Y += v.Y
	}
	c.X /= float64(n)
	c.Y /= float64(n)
	return c
}

type Panel struct {
	ID    int   `yaml:"id"`
	Shape Shape `yaml:"shape"`
}

// Layout is the full panel arrangement plus the global orientation
// (degrees) that must be applied before slicing. Read-only to the
// effect core; owned by whoever loaded it.
type Layout struct {
	Orientation float64 `yaml:"orientation"`
	Panels      []Panel `yaml:"panels"`
}

// Load reads a layout document from a YAML file.
func Load(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	if len(l.Panels) == 0 {
		return nil, errors.New("layout has no panels")
	}
	seen := map[int]bool{}
	for _, p := range l.Panels {
		if seen[p.ID] {
			return nil, fmt.Errorf("layout %s: duplicate panel id %d", path, p.ID)
		}
		seen[p.ID] = true
	}
	return &l, nil
}

// Save writes the layout back out as YAML.
func Save(path string, l *Layout) error {
	b, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Rotate applies the stored orientation in place: every panel vertex is
// rotated about the layout centroid, then the orientation is zeroed so
// a second call is a no-op.
func (l *Layout) Rotate() {
	if l.Orientation == 0 {
		return
	}
	center := l.Centroid()
	rad := l.Orientation * math.Pi / 180.0
	sin, cos := math.Sin(rad), math.Cos(rad)
	for pi := range l.Panels {
		vs := l.Panels[pi].Shape.Vertices
		for vi := range vs {
			dx := vs[vi].X - center.X
			dy := vs[vi].Y - center.Y
			vs[vi] = Point{
				X: center.X + dx*cos - dy*sin,
				Y: center.Y + dx*sin + dy*cos,
			}
		}
	}
	l.Orientation = 0
}

// Centroid of the whole layout: mean of panel centroids.
func (l *Layout) Centroid() Point {
	if len(l.Panels) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range l.Panels {
		pc := p.Shape.Centroid()
		c.X += pc.X
		c.Y += pc.Y
	}
	c.X /= float64(len(l.Panels))
	c.Y /= float64(len(l.Panels))
	return c
}

// PanelCentroid returns the centroid of the panel with the given id.
func (l *Layout) PanelCentroid(id int) (Point, bool) {
	for _, p := range l.Panels {
		if p.ID == id {
			return p.Shape.Centroid(), true
		}
	}
	return Point{}, false
}

// CentroidY is PanelCentroid's Y for an id known to exist; unknown ids
// yield 0.
func (l *Layout) CentroidY(id int) float64 {
	c, _ := l.PanelCentroid(id)
	return c.Y
}

// TriangleGrid synthesizes a layout of triangular panels arranged in
// vertical columns, one entry per column giving its panel count. Panel
// ids are assigned sequentially from 1, top of the leftmost column
// first, so within a column ascending id means descending Y.
func TriangleGrid(columns ...int) *Layout {
	l := &Layout{}
	id := 1
	for col, count := range columns {
		cx := float64(col) * (SideMM / 2)
		for row := 0; row < count; row++ {
			cy := -float64(row) * (HeightMM / 2)
			up := (col+row)%2 == 0
			l.Panels = append(l.Panels, Panel{
				ID:    id,
				Shape: triangleAt(cx, cy, up),
			})
			id++
		}
	}
	return l
}

// triangleAt builds a triangle whose vertex mean is exactly (cx, cy).
func triangleAt(cx, cy float64, up bool) Shape {
	h := HeightMM
	if !up {
		h = -h
	}
	return Shape{Vertices: []Point{
		{X: cx - SideMM/2, Y: cy - h/3},
		{X: cx + SideMM/2, Y: cy - h/3},
		{X: cx, Y: cy + 2*h/3},
	}}
}
