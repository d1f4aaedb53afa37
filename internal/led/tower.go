package led

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
)

// Command bytes for serial tower lights.
const (
	cmdRedOn     byte = 0x11
	cmdRedOff    byte = 0x21
	cmdYellowOn  byte = 0x12
	cmdYellowOff byte = 0x22
	cmdGreenOn   byte = 0x14
	cmdGreenOff  byte = 0x24
)

// DefaultTowerBaud is the usual rate for USB tower lights.
const DefaultTowerBaud = 9600

// Tower mirrors the lit panel onto a three-lamp serial tower light.
// The port is opened per write, so an unplugged tower only fails the
// writes that reach it.
type Tower struct {
	port string
	baud int
}

func NewTower(port string, baud int) *Tower {
	if baud <= 0 {
		baud = DefaultTowerBaud
	}
	return &Tower{port: port, baud: baud}
}

func (t *Tower) openPort() (*serial.Port, error) {
	return serial.OpenPort(&serial.Config{Name: t.port, Baud: t.baud})
}

func (t *Tower) Write(frame []effect.Frame) error {
	var on byte
	for _, f := range frame {
		if f.Color != palette.Black {
			on = lampFor(f.Color)
			break
		}
	}

	p, err := t.openPort()
	if err != nil {
		return fmt.Errorf("tower %s: %w", t.port, err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Str("port", t.port).Msg("closing tower port")
		}
	}()

	for _, off := range []byte{cmdRedOff, cmdYellowOff, cmdGreenOff} {
		if _, err := p.Write([]byte{off}); err != nil {
			return fmt.Errorf("tower clear: %w", err)
		}
	}
	if on != 0 {
		if _, err := p.Write([]byte{on}); err != nil {
			return fmt.Errorf("tower lamp: %w", err)
		}
	}
	return nil
}

func (t *Tower) Close() error {
	// Leave the tower dark on the way out.
	p, err := t.openPort()
	if err != nil {
		return nil
	}
	defer p.Close()
	for _, off := range []byte{cmdRedOff, cmdYellowOff, cmdGreenOff} {
		p.Write([]byte{off})
	}
	return nil
}

// lampFor maps a phase color onto the closest of the three lamps by
// channel dominance.
func lampFor(c palette.RGB) byte {
	switch {
	case c.R > 0 && c.G > 0:
		return cmdYellowOn
	case c.G > 0:
		return cmdGreenOn
	default:
		return cmdRedOn
	}
}
