package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
)

// DefaultSPISpeedHz suits WS2812-class strips.
const DefaultSPISpeedHz = 2500000

// SPI drives an NRZ LED strip, one pixel per panel, over a spidev port.
type SPI struct {
	dev  *nrzled.Dev
	port spi.PortCloser
}

// NewSPI initializes the host, opens the port and prepares the strip.
func NewSPI(devPath string, panels int, speedHz int) (*SPI, error) {
	if speedHz <= 0 {
		speedHz = DefaultSPISpeedHz
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(devPath)
	if err != nil {
		return nil, fmt.Errorf("spi %s: %w", devPath, err)
	}
	opts := nrzled.Opts{
		NumPixels: panels,
		Channels:  3,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	}
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &SPI{dev: dev, port: port}, nil
}

func (s *SPI) Write(frame []effect.Frame) error {
	_, err := s.dev.Write(toGRB(frame))
	return err
}

func (s *SPI) Close() error {
	if err := s.dev.Halt(); err != nil {
		s.port.Close()
		return err
	}
	return s.port.Close()
}
