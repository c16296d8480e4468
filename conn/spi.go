package conn

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// ErrDCLine is returned when a SPI transport is created without D/C line.
var ErrDCLine = errors.New("conn: data/command (DC) line is required")

// SPIBus is a SPI connection able to run write transactions.
//
// Both periph.io spi.Conn and TinyGo drivers.SPI implement it.
type SPIBus interface {
	Tx(w, r []byte) error
}

// SPIConfig describes the 4-wire SPI transport configuration.
type SPIConfig struct {
	// Port name in the periph.io registry, empty for the first available port.
	// Only used by OpenSPI.
	Port string

	// Speed of the SPI clock. The SSD13xx family is good for a 300ns cycle.
	Speed physic.Frequency

	// MaxPayload is the largest transaction the bus accepts.
	MaxPayload int

	// DataLow inverts the data/command line, data is sent with the line low.
	DataLow bool

	// InitSignals is the number of init signals required before the transport
	// accepts traffic (1 or 2).
	InitSignals int

	// Strict returns bus errors to the caller instead of logging them.
	Strict bool
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:       3300 * physic.KiloHertz,
	MaxPayload:  4096,
	InitSignals: 1,
}

// SPI is a transport selecting command or data mode with a D/C line.
type SPI struct {
	bus     SPIBus
	closer  io.Closer
	dc      Line
	dcLevel gpio.Level
	dcValid bool
	dataLow bool
	data    bool
	max     int
	ready   *Readiness
	policy  errorPolicy
	one     [1]byte
}

// NewSPI returns a transport on an already connected SPI bus.
func NewSPI(bus SPIBus, dc Line, config *SPIConfig) (*SPI, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCLine
	}

	c := DefaultSPIConfig
	if config != nil {
		c = *config
	}
	if c.MaxPayload == 0 {
		c.MaxPayload = DefaultSPIConfig.MaxPayload
	}
	if c.MaxPayload < 1 {
		return nil, fmt.Errorf("conn: invalid SPI maximum payload %d", c.MaxPayload)
	}

	ready, err := NewReadiness(c.InitSignals)
	if err != nil {
		return nil, err
	}

	t := &SPI{
		bus:     bus,
		dc:      dc,
		dataLow: c.DataLow,
		max:     c.MaxPayload,
		ready:   ready,
	}
	t.policy = errorPolicy{strict: c.Strict, name: t.String()}
	return t, nil
}

// OpenSPI opens a SPI port from the periph.io registry and connects to it in
// mode 0 with 8 bit words.
func OpenSPI(dc Line, config *SPIConfig) (*SPI, error) {
	c := DefaultSPIConfig
	if config != nil {
		c = *config
	}
	if c.Speed == 0 {
		c.Speed = DefaultSPIConfig.Speed
	}

	port, err := spireg.Open(c.Port)
	if err != nil {
		return nil, err
	}
	bus, err := port.Connect(c.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	t, err := NewSPI(bus, dc, &c)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	t.closer = port
	return t, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %v", c.bus)
}

// Close the underlying port, if it was opened by OpenSPI.
func (c *SPI) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *SPI) State() State {
	return c.ready.State()
}

func (c *SPI) Init() error {
	if completed := c.ready.Init(); completed {
		c.data = false
		c.dcValid = false
		if debug {
			log.Printf("conn: %s ready", c)
		}
	}
	return nil
}

func (c *SPI) Halt() error {
	c.ready.Reset()
	return nil
}

func (c *SPI) SetMode(data bool) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	c.data = data
	return nil
}

func (c *SPI) WriteByte(b byte) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	if err := c.updateDC(); err != nil {
		return err
	}
	c.one[0] = b
	return c.policy.check(c.bus.Tx(c.one[:], nil))
}

// WriteSequence sends p in chunks of at most the maximum payload.
func (c *SPI) WriteSequence(p []byte) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	if len(p) == 0 {
		return nil
	}
	if err := c.updateDC(); err != nil {
		return err
	}
	for len(p) > 0 {
		n := min(len(p), c.max)
		if err := c.policy.check(c.bus.Tx(p[:n], nil)); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func (c *SPI) updateDC() error {
	level := gpio.Level(c.data != c.dataLow)
	if c.dcValid && c.dcLevel == level {
		return nil
	}
	if err := c.dc.Out(level); err != nil {
		return err
	}
	c.dcLevel = level
	c.dcValid = true
	return nil
}
