// Package conn frames logical display writes into bus transactions.
//
// A display driver talks to its controller with three operations: select the
// command or data mode, write a single byte and write a sequence of bytes. The
// transports in this package turn those into transactions on an I²C or SPI bus,
// splitting sequences that do not fit the bus payload limit.
package conn

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"periph.io/x/conn/v3/gpio"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Errors.
var (
	ErrNotReady   = errors.New("conn: transport is not initialized")
	ErrMaxPayload = errors.New("conn: maximum payload must be at least 2 bytes")
)

// Transport is a framed connection to a display controller.
type Transport interface {
	io.Closer
	fmt.Stringer

	// Init delivers an init signal. The transport is usable once it has seen
	// the configured number of init signals.
	Init() error

	// Halt returns the transport to the uninitialized state.
	Halt() error

	// State of the readiness gate.
	State() State

	// SetMode selects command (false) or data (true) mode for subsequent writes.
	SetMode(data bool) error

	// WriteByte sends a single byte in the current mode.
	WriteByte(b byte) error

	// WriteSequence sends all bytes in p in the current mode.
	WriteSequence(p []byte) error
}

// Line is a digital output, such as a chip select or reset line.
//
// Any periph [gpio.PinOut] is a Line.
type Line interface {
	Out(gpio.Level) error
}

// Bus error policy shared by the transports.
type errorPolicy struct {
	strict bool
	name   string
}

func (p errorPolicy) check(err error) error {
	if err == nil {
		return nil
	}
	if p.strict {
		return fmt.Errorf("conn: %s transaction failed: %w", p.name, err)
	}
	log.Printf("conn: %s transaction failed (dropped): %v", p.name, err)
	return nil
}
