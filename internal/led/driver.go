// Package led holds the output sinks a cycle frame can be pushed to:
// real WS281x-style strips over SPI, a serial tower light, or a console
// simulator for headless runs.
package led

import "github.com/coreman2200/funtimes-trilight/internal/effect"

// Driver abstracts a panel output sink.
type Driver interface {
	// Write pushes one full frame, one entry per panel.
	Write(frame []effect.Frame) error
	// Close releases the sink. Called exactly once at shutdown.
	Close() error
}

// toGRB serializes a frame to strip bytes, one pixel per panel, in the
// wire order WS281x chips expect.
func toGRB(frame []effect.Frame) []byte {
	buf := make([]byte, 0, len(frame)*3)
	for _, f := range frame {
		buf = append(buf, f.Color.G, f.Color.R, f.Color.B)
	}
	return buf
}
