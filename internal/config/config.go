package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

type Serial struct {
	Port string `yaml:"port"` // e.g. /dev/ttyUSB0
	Baud int    `yaml:"baud"` // e.g. 9600
}

type Config struct {
	Driver string `yaml:"driver"` // "sim" | "spi" | "tower"
	Addr   string `yaml:"addr,omitempty"`

	Layout  string `yaml:"layout,omitempty"`  // layout YAML path
	Palette string `yaml:"palette,omitempty"` // palette YAML path
	Options string `yaml:"options,omitempty"` // option values JSON path

	TransTime      int     `yaml:"trans_time,omitempty"`      // ms; overrides options
	SliceTolerance float64 `yaml:"slice_tolerance,omitempty"` // mm

	SPI    SPI    `yaml:"spi,omitempty"`
	Serial Serial `yaml:"serial,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
