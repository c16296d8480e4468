// Package paged drives paged monochrome OLED controllers over narrow serial buses.
//
// The controllers supported here (SSD1309, SSD1306, SSD1305, SH1106) organize
// their memory in pages: horizontal bands 8 pixels high, one byte per column.
// A Device renders one page at a time: the renderer fills the page buffer, the
// driver transfers it and moves to the next page. Wrapping a controller in a
// FrameCache keeps a shadow of the whole frame and only transfers the columns
// that changed since the previous frame.
//
// A Device is not safe for concurrent use.
package paged

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/paged/conn"
	"github.com/BeatGlow/paged/esc"
	"github.com/BeatGlow/paged/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Errors.
var (
	ErrPageWrite = errors.New("paged: page write failed")
	ErrPage      = errors.New("paged: page index out of range")
	ErrPageSize  = errors.New("paged: page buffer size mismatch")
)

// Config is the device configuration.
type Config struct {
	// ChipSelect line, active low. Optional.
	ChipSelect conn.Line

	// Reset line, active low. Optional.
	Reset conn.Line

	// Power line switching the panel supply. Optional.
	Power conn.Line

	// Sleep blocks the caller, defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Device is the context of one physical display: transport, control lines,
// page buffer and controller driver.
type Device struct {
	t           conn.Transport
	driver      Driver
	cs          conn.Line
	rst         conn.Line
	vcc         conn.Line
	sleep       func(time.Duration)
	page        *pixel.MonoPage
	pages       int
	initialized bool
}

// New returns a device for driver, talking over t. The device is not
// initialized, see Initialize.
func New(t conn.Transport, driver Driver, config *Config) (*Device, error) {
	if t == nil {
		return nil, errors.New("paged: transport is required")
	}
	size := driver.Size()
	if size.X <= 0 || size.Y <= 0 || size.Y%pixel.PageHeight != 0 {
		return nil, fmt.Errorf("paged: unsupported size %dx%d", size.X, size.Y)
	}
	if config == nil {
		config = new(Config)
	}

	d := &Device{
		t:      t,
		driver: driver,
		cs:     config.ChipSelect,
		rst:    config.Reset,
		vcc:    config.Power,
		sleep:  config.Sleep,
		page:   pixel.NewMonoPage(size.X),
		pages:  size.Y / pixel.PageHeight,
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("%v on %s", d.driver, d.t)
}

// Bounds of the display.
func (d *Device) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.driver.Size()}
}

// Pages is the number of pages in a frame.
func (d *Device) Pages() int {
	return d.pages
}

func (d *Device) send(m Message) (bool, error) {
	if debug {
		log.Printf("paged: %s: %s", d, m)
	}
	return d.driver.Handle(d, m)
}

// Initialize the transport and the controller.
//
// A transport waiting for two init signals rejects the first call with
// conn.ErrNotReady, without touching the bus or the control lines.
func (d *Device) Initialize() error {
	if _, err := d.send(MsgInit{}); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

// Shutdown switches the display off and returns the transport to the
// uninitialized state.
func (d *Device) Shutdown() error {
	var err error
	if d.initialized {
		_, err = d.send(MsgSleepOn{})
		d.initialized = false
	}
	if _, serr := d.send(MsgStop{}); err == nil {
		err = serr
	}
	if herr := d.t.Halt(); err == nil {
		err = herr
	}
	return err
}

// Close shuts the device down and closes the transport.
func (d *Device) Close() error {
	err := d.Shutdown()
	if cerr := d.t.Close(); err == nil {
		err = cerr
	}
	return err
}

// SetContrast adjusts the contrast level.
func (d *Device) SetContrast(level uint8) error {
	_, err := d.send(MsgContrast{Level: level})
	return err
}

// EnterSleep switches the display off, display memory is retained.
func (d *Device) EnterSleep() error {
	_, err := d.send(MsgSleepOn{})
	return err
}

// ExitSleep switches the display back on.
func (d *Device) ExitSleep() error {
	_, err := d.send(MsgSleepOff{})
	return err
}

// SubmitPage transfers pix as the content of page. The bytes are copied, pix
// is not retained.
//
// On an error wrapping ErrPageWrite the page was not consumed and should be
// submitted again.
func (d *Device) SubmitPage(page int, pix []byte) error {
	if page < 0 || page >= d.pages {
		return fmt.Errorf("%w: %d", ErrPage, page)
	}
	if len(pix) != len(d.page.Pix) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrPageSize, len(d.page.Pix), len(pix))
	}
	d.page.SetIndex(page)
	copy(d.page.Pix, pix)
	_, err := d.send(MsgPageNext{})
	return err
}

// FirstPage starts a new frame at the first page, with a cleared page buffer.
func (d *Device) FirstPage() {
	_, _ = d.send(MsgPageFirst{})
}

// Page is the buffer of the current page. It accepts drawing in display
// coordinates, pixels outside the current band are ignored.
func (d *Device) Page() *pixel.MonoPage {
	return d.page
}

// NextPage transfers the current page and reports whether another page of
// the frame follows. On error the current page is kept, calling NextPage
// again retries it.
func (d *Device) NextPage() (bool, error) {
	return d.send(MsgPageNext{})
}

// Render runs a full frame: render is called once per page and draws the
// whole scene, in display coordinates, into the page buffer.
func (d *Device) Render(render func(draw.Image)) error {
	d.FirstPage()
	for {
		render(d.page)
		more, err := d.NextPage()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Base is the page buffer bookkeeping shared by all drivers: it handles
// the page messages and accepts every other message.
func (d *Device) Base(m Message) (bool, error) {
	switch m.(type) {
	case MsgInit, MsgPageFirst:
		d.page.Clear()
		d.page.SetIndex(0)
	case MsgPageNext:
		next := d.page.Index + 1
		d.page.Clear()
		if next >= d.pages {
			d.page.SetIndex(0)
			return false, nil
		}
		d.page.SetIndex(next)
	}
	return true, nil
}

// InitTransport delivers an init signal to the transport, returning
// conn.ErrNotReady while it still waits for more.
func (d *Device) InitTransport() error {
	if err := d.t.Init(); err != nil {
		return err
	}
	if d.t.State() != conn.Ready {
		return conn.ErrNotReady
	}
	return nil
}

// WritePage sends the page buffer in the current mode.
func (d *Device) WritePage() error {
	return d.t.WriteSequence(d.page.Pix)
}

// WriteSequence sends p in the current mode.
func (d *Device) WriteSequence(p []byte) error {
	return d.t.WriteSequence(p)
}

// SetChipSelect selects chip n on the active low chip select line, 0
// deselects.
//
// The control lines share the readiness gate of the transport: they are
// not driven before the transport is ready.
func (d *Device) SetChipSelect(n int) error {
	return d.drive(d.cs, gpio.Level(n == 0))
}

func (d *Device) SetAddress(data bool) error {
	return d.t.SetMode(data)
}

func (d *Device) SetReset(level gpio.Level) error {
	return d.drive(d.rst, level)
}

func (d *Device) SetPower(level gpio.Level) error {
	return d.drive(d.vcc, level)
}

func (d *Device) drive(l conn.Line, level gpio.Level) error {
	if d.t.State() != conn.Ready {
		return conn.ErrNotReady
	}
	if l == nil {
		return nil
	}
	return l.Out(level)
}

func (d *Device) WriteByte(b byte) error {
	return d.t.WriteByte(b)
}

func (d *Device) Sleep(duration time.Duration) {
	d.sleep(duration)
}

var _ esc.Target = (*Device)(nil)
