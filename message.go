package paged

import (
	"fmt"
	"image"
)

// Message is a lifecycle message handled by a Driver.
//
// The set of messages is closed: MsgInit, MsgStop, MsgPageFirst, MsgPageNext,
// MsgContrast, MsgSleepOn and MsgSleepOff.
type Message interface {
	fmt.Stringer
	message()
}

type (
	// MsgInit initializes the transport and the controller.
	MsgInit struct{}

	// MsgStop stops the driver.
	MsgStop struct{}

	// MsgPageFirst rewinds the page buffer to the first page.
	MsgPageFirst struct{}

	// MsgPageNext transfers the current page and advances to the next one.
	MsgPageNext struct{}

	// MsgContrast sets the contrast level.
	MsgContrast struct {
		Level uint8
	}

	// MsgSleepOn switches the display off.
	MsgSleepOn struct{}

	// MsgSleepOff switches the display back on.
	MsgSleepOff struct{}
)

func (MsgInit) message()      {}
func (MsgStop) message()      {}
func (MsgPageFirst) message() {}
func (MsgPageNext) message()  {}
func (MsgContrast) message()  {}
func (MsgSleepOn) message()   {}
func (MsgSleepOff) message()  {}

func (MsgInit) String() string       { return "init" }
func (MsgStop) String() string       { return "stop" }
func (MsgPageFirst) String() string  { return "page first" }
func (MsgPageNext) String() string   { return "page next" }
func (m MsgContrast) String() string { return fmt.Sprintf("contrast %d", m.Level) }
func (MsgSleepOn) String() string    { return "sleep on" }
func (MsgSleepOff) String() string   { return "sleep off" }

// Driver handles the messages for one family of controllers.
//
// The meaning of the returned bool depends on the message: for MsgPageNext it
// reports whether another page follows, for the other messages it is true when
// the message was handled. Messages a driver has no use for are passed on to
// Device.Base.
type Driver interface {
	Handle(d *Device, m Message) (bool, error)

	// Size of the display in pixels.
	Size() image.Point
}

// PageDriver is a Driver able to open a data window at any page and column.
type PageDriver interface {
	Driver

	// SelectPage prepares the controller for data written to page, starting
	// at column col, and leaves the transport in data mode.
	SelectPage(d *Device, page, col int) error
}
