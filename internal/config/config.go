// Package config loads the board configuration of the demo command.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/paged/conn"
)

// Config represents a display board: controller, bus and control lines.
type Config struct {
	Controller string      `json:"controller"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Bus        string      `json:"bus"`
	I2C        I2CConfig   `json:"i2c"`
	SPI        SPIConfig   `json:"spi"`
	Lines      LinesConfig `json:"lines"`

	// Cache enables the frame cache, only transferring changed columns.
	Cache bool `json:"cache"`

	Contrast uint8 `json:"contrast"`

	// Interval between frames, in milliseconds.
	Interval int `json:"interval"`
}

// I2CConfig represents the I²C transport settings.
type I2CConfig struct {
	Bus         string `json:"bus"`
	Addr        uint16 `json:"addr"`
	MaxPayload  int    `json:"max_payload"`
	SpeedHz     int64  `json:"speed_hz"`
	InitSignals int    `json:"init_signals"`
	Strict      bool   `json:"strict"`
}

// SPIConfig represents the SPI transport settings.
type SPIConfig struct {
	Port        string     `json:"port"`
	SpeedHz     int64      `json:"speed_hz"`
	MaxPayload  int        `json:"max_payload"`
	DataLow     bool       `json:"data_low"`
	InitSignals int        `json:"init_signals"`
	Strict      bool       `json:"strict"`
	DC          LineConfig `json:"dc"`
}

// LinesConfig represents the optional control lines.
type LinesConfig struct {
	ChipSelect LineConfig `json:"cs"`
	Reset      LineConfig `json:"reset"`
	Power      LineConfig `json:"power"`
}

// LineConfig represents a GPIO line, either by periph.io pin name or by chip
// and offset on the Linux GPIO character device.
type LineConfig struct {
	Name   string `json:"name,omitempty"`
	Chip   string `json:"chip,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Connected reports whether the line is configured.
func (l LineConfig) Connected() bool {
	return l.Name != "" || l.Chip != ""
}

func (l LineConfig) String() string {
	switch {
	case l.Chip != "":
		return fmt.Sprintf("%s:%d", l.Chip, l.Offset)
	case l.Name != "":
		return l.Name
	default:
		return "unconnected"
	}
}

// LoadConfig loads the configuration from a file, on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return config, nil
}

// DefaultConfig returns the default configuration, an SSD1309 on the first
// I²C bus.
func DefaultConfig() *Config {
	return &Config{
		Controller: "ssd1309",
		Bus:        "i2c",
		I2C: I2CConfig{
			Addr:        conn.DefaultI2CConfig.Addr,
			MaxPayload:  conn.DefaultI2CConfig.MaxPayload,
			SpeedHz:     int64(conn.DefaultI2CConfig.Speed / physic.Hertz),
			InitSignals: conn.DefaultI2CConfig.InitSignals,
		},
		SPI: SPIConfig{
			SpeedHz:     int64(conn.DefaultSPIConfig.Speed / physic.Hertz),
			MaxPayload:  conn.DefaultSPIConfig.MaxPayload,
			InitSignals: conn.DefaultSPIConfig.InitSignals,
			DC:          LineConfig{Name: "GPIO24"},
		},
		Lines: LinesConfig{
			Reset: LineConfig{Name: "GPIO25"},
		},
		Cache:    true,
		Contrast: 0xDF,
		Interval: 50,
	}
}

// Validate checks the configuration for values the transports reject.
func (c *Config) Validate() error {
	switch c.Bus {
	case "i2c":
		if c.I2C.InitSignals < 0 || c.I2C.InitSignals > 2 {
			return fmt.Errorf("unsupported number of init signals %d", c.I2C.InitSignals)
		}
	case "spi":
		if !c.SPI.DC.Connected() {
			return conn.ErrDCLine
		}
		if c.SPI.InitSignals < 0 || c.SPI.InitSignals > 2 {
			return fmt.Errorf("unsupported number of init signals %d", c.SPI.InitSignals)
		}
	default:
		return fmt.Errorf("unsupported bus type %q", c.Bus)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("invalid frame interval %dms", c.Interval)
	}
	return nil
}

// Transport returns the I²C transport configuration.
func (c I2CConfig) Transport() *conn.I2CConfig {
	return &conn.I2CConfig{
		Bus:         c.Bus,
		Addr:        c.Addr,
		MaxPayload:  c.MaxPayload,
		Speed:       physic.Frequency(c.SpeedHz) * physic.Hertz,
		InitSignals: c.InitSignals,
		Strict:      c.Strict,
	}
}

// Transport returns the SPI transport configuration.
func (c SPIConfig) Transport() *conn.SPIConfig {
	return &conn.SPIConfig{
		Port:        c.Port,
		Speed:       physic.Frequency(c.SpeedHz) * physic.Hertz,
		MaxPayload:  c.MaxPayload,
		DataLow:     c.DataLow,
		InitSignals: c.InitSignals,
		Strict:      c.Strict,
	}
}
