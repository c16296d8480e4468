package conn

import (
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// I²C control byte values, sent as the first byte of every transaction.
const (
	I2CCommand byte = 0x00 // transaction carries command bytes
	I2CData    byte = 0x40 // transaction carries data bytes
)

// Bus is an I²C bus able to run write transactions.
//
// Both periph.io i2c.Bus and TinyGo drivers.I2C implement it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

type speedSetter interface {
	SetSpeed(physic.Frequency) error
}

// I2CConfig describes the I²C transport configuration.
type I2CConfig struct {
	// Bus name in the periph.io registry, empty for the first available bus.
	// Only used by OpenI2C.
	Bus string

	// Addr is the I²C device address.
	Addr uint16

	// MaxPayload is the largest transaction the bus accepts, control byte
	// included. Arduino Wire buffers hold 32 bytes.
	MaxPayload int

	// Speed is the bus clock applied on init.
	Speed physic.Frequency

	// InitSignals is the number of init signals required before the transport
	// accepts traffic (1 or 2).
	InitSignals int

	// Strict returns bus errors to the caller instead of logging them.
	Strict bool
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Addr:        0x3c,
	MaxPayload:  32,
	Speed:       400 * physic.KiloHertz,
	InitSignals: 1,
}

// I2C is a transport framing writes as I²C transactions led by a control byte.
type I2C struct {
	bus     Bus
	closer  io.Closer
	addr    uint16
	max     int
	speed   physic.Frequency
	control byte
	ready   *Readiness
	policy  errorPolicy
	tx      []byte
}

// NewI2C returns a transport on an already opened bus.
func NewI2C(bus Bus, config *I2CConfig) (*I2C, error) {
	c := DefaultI2CConfig
	if config != nil {
		c = *config
	}
	if c.Addr == 0 {
		c.Addr = DefaultI2CConfig.Addr
	}
	if c.MaxPayload == 0 {
		c.MaxPayload = DefaultI2CConfig.MaxPayload
	}
	if c.MaxPayload < 2 {
		return nil, ErrMaxPayload
	}
	if c.Speed == 0 {
		c.Speed = DefaultI2CConfig.Speed
	}

	ready, err := NewReadiness(c.InitSignals)
	if err != nil {
		return nil, err
	}

	t := &I2C{
		bus:     bus,
		addr:    c.Addr,
		max:     c.MaxPayload,
		speed:   c.Speed,
		control: I2CCommand,
		ready:   ready,
		tx:      make([]byte, 0, c.MaxPayload),
	}
	t.policy = errorPolicy{strict: c.Strict, name: t.String()}
	return t, nil
}

// OpenI2C opens an I²C bus from the periph.io registry.
//
// The host drivers must be initialized first, see periph.io/x/host/v3.
func OpenI2C(config *I2CConfig) (*I2C, error) {
	var name string
	if config != nil {
		name = config.Bus
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}

	t, err := NewI2C(bus, config)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	t.closer = bus
	return t, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C %v@%#02x", c.bus, c.addr)
}

// Close the underlying bus, if it was opened by OpenI2C.
func (c *I2C) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *I2C) State() State {
	return c.ready.State()
}

func (c *I2C) Init() error {
	completed := c.ready.Init()
	if !c.ready.Ready() {
		if debug {
			log.Printf("conn: %s armed, waiting for confirming init", c)
		}
		return nil
	}
	if completed {
		c.control = I2CCommand
		if debug {
			log.Printf("conn: %s ready", c)
		}
	}
	if s, ok := c.bus.(speedSetter); ok {
		if err := s.SetSpeed(c.speed); err != nil {
			log.Printf("conn: %s can't set bus speed to %s: %v", c, c.speed, err)
		}
	}
	return nil
}

func (c *I2C) Halt() error {
	c.ready.Reset()
	c.control = I2CCommand
	return nil
}

func (c *I2C) SetMode(data bool) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	if data {
		c.control = I2CData
	} else {
		c.control = I2CCommand
	}
	return nil
}

func (c *I2C) WriteByte(b byte) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	c.begin()
	c.write(b)
	return c.end()
}

// WriteSequence sends p in as many transactions as needed for every
// transaction to stay within the maximum payload.
func (c *I2C) WriteSequence(p []byte) error {
	if !c.ready.Ready() {
		return ErrNotReady
	}
	chunk := c.max - 1
	if debug && len(p) > chunk {
		log.Printf("conn: write %d bytes in %d transactions", len(p), (len(p)+chunk-1)/chunk)
	}
	for len(p) > 0 {
		n := min(len(p), chunk)
		c.begin()
		c.write(p[:n]...)
		if err := c.end(); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func (c *I2C) begin() {
	c.tx = append(c.tx[:0], c.control)
}

func (c *I2C) write(p ...byte) {
	c.tx = append(c.tx, p...)
}

func (c *I2C) end() error {
	return c.policy.check(c.bus.Tx(c.addr, c.tx, nil))
}
