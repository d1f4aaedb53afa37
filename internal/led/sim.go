package led

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
)

// Sim renders each frame as a one-pixel-per-panel row on the console.
type Sim struct {
	drawer display.Drawer
}

// NewSim returns a console driver sized for the given panel count.
func NewSim(panels int) *Sim {
	if panels <= 0 {
		panels = 1
	}
	return &Sim{drawer: screen.New(panels)}
}

func (s *Sim) Write(frame []effect.Frame) error {
	im := image.NewNRGBA(image.Rect(0, 0, len(frame), 1))
	for x, f := range frame {
		im.SetNRGBA(x, 0, color.NRGBA{R: f.Color.R, G: f.Color.G, B: f.Color.B, A: 255})
	}
	return s.drawer.Draw(s.drawer.Bounds(), im, image.Point{})
}

func (s *Sim) Close() error {
	return s.drawer.Halt()
}
