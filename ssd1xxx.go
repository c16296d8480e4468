package paged

import (
	"fmt"
	"image"

	"github.com/BeatGlow/paged/esc"
)

const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setMemoryMode         = 0x20
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA1
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setMultiplexRatio     = 0xA8
	setMasterConfig       = 0xAD
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setPageStart          = 0xB0
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setAreaColor          = 0xD8
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDetect         = 0xDB
	setCommandLock        = 0xFD
	setLUT                = 0x91

	memoryModePage = 0x02

	// powerOnDelay is the settling time after switching the panel on, in ms.
	powerOnDelay = 50
)

// Chip is a paged controller from the SSD13xx family, described by its
// geometry and the scripts played for each message.
type Chip struct {
	Name   string
	Width  int
	Height int

	// InitScript brings the controller from reset to display on.
	InitScript esc.Script

	// DataStart selects the controller and resets the column address, in
	// command mode.
	DataStart esc.Script

	SleepOn  esc.Script
	SleepOff esc.Script

	// PageAddr is the page start opcode, or'ed with the page index.
	PageAddr byte

	// ColumnOffset is the first visible column in controller memory.
	ColumnOffset int
}

func (c *Chip) String() string {
	return fmt.Sprintf("%s %dx%d", c.Name, c.Width, c.Height)
}

// Size of the display in pixels.
func (c *Chip) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// SelectPage plays the data start script, selects page and, for a non-zero
// col, moves the column address. The transport is left in data mode.
func (c *Chip) SelectPage(d *Device, page, col int) (err error) {
	if err = esc.Play(d, c.DataStart); err != nil {
		return
	}
	if err = d.WriteByte(c.PageAddr | byte(page)); err != nil {
		return
	}
	if col != 0 {
		x := col + c.ColumnOffset
		if err = d.WriteByte(setLowColumn | byte(x&0x0f)); err != nil {
			return
		}
		if err = d.WriteByte(setHighColumn | byte(x>>4)); err != nil {
			return
		}
	}
	return d.SetAddress(true)
}

// Handle the device messages.
func (c *Chip) Handle(d *Device, m Message) (bool, error) {
	switch m := m.(type) {
	case MsgInit:
		if err := d.InitTransport(); err != nil {
			return false, err
		}
		if err := esc.Play(d, c.InitScript); err != nil {
			return false, err
		}
	case MsgPageNext:
		page := d.Page().Index
		if err := c.SelectPage(d, page, 0); err != nil {
			return false, pageError(page, err)
		}
		if err := d.WritePage(); err != nil {
			return false, pageError(page, err)
		}
		if err := d.SetChipSelect(0); err != nil {
			return false, err
		}
	case MsgContrast:
		if err := c.contrast(d, m.Level); err != nil {
			return false, err
		}
		return true, nil
	case MsgSleepOn:
		if err := esc.Play(d, c.SleepOn); err != nil {
			return false, err
		}
		return true, nil
	case MsgSleepOff:
		if err := esc.Play(d, c.SleepOff); err != nil {
			return false, err
		}
		return true, nil
	}
	return d.Base(m)
}

func (c *Chip) contrast(d *Device, level uint8) (err error) {
	if err = d.SetChipSelect(1); err != nil {
		return
	}
	if err = d.SetAddress(false); err != nil {
		return
	}
	if err = d.WriteByte(setContrast); err != nil {
		return
	}
	if err = d.WriteByte(level); err != nil {
		return
	}
	return d.SetChipSelect(0)
}

func pageError(page int, err error) error {
	return fmt.Errorf("%w: page %d: %w", ErrPageWrite, page, err)
}

// dataStart resets the column address to offset.
func dataStart(offset int) esc.Script {
	return esc.Build(
		esc.Address(false),
		esc.ChipSelect(1),
		esc.Raw(setHighColumn|byte(offset>>4), setLowColumn|byte(offset&0x0f)),
	)
}

var (
	sleepOn = esc.Build(
		esc.Address(false),
		esc.ChipSelect(1),
		esc.Raw(setDisplayOff),
		esc.ChipSelect(0),
	)
	sleepOff = esc.Build(
		esc.Address(false),
		esc.ChipSelect(1),
		esc.Raw(setDisplayOn),
		esc.Delay(powerOnDelay),
		esc.ChipSelect(0),
	)
)

// initScript wraps the controller configuration commands in the reset and
// power up sequence.
func initScript(commands ...byte) esc.Script {
	return esc.Build(
		esc.ChipSelect(0),
		esc.Address(false),
		esc.Reset(1),
		esc.ChipSelect(1),
		esc.Raw(commands...),
		esc.Power(true),
		esc.Delay(powerOnDelay),
		esc.Raw(setDisplayOn),
		esc.Delay(powerOnDelay),
		esc.ChipSelect(0),
	)
}

func newChip(name string, width, height, offset int, script esc.Script) *Chip {
	return &Chip{
		Name:         name,
		Width:        width,
		Height:       height,
		InitScript:   script,
		DataStart:    dataStart(offset),
		SleepOn:      sleepOn,
		SleepOff:     sleepOff,
		PageAddr:     setPageStart,
		ColumnOffset: offset,
	}
}

// ByName returns the chip for the controller name, with the given size. A zero
// size selects the default size of the controller.
func ByName(name string, width, height int) (*Chip, error) {
	switch name {
	case "ssd1309":
		return SSD1309(width, height)
	case "ssd1306":
		return SSD1306(width, height)
	case "ssd1305":
		return SSD1305(width, height)
	case "sh1106":
		return SH1106(width, height)
	default:
		return nil, fmt.Errorf("paged: unknown controller %q", name)
	}
}
