package paged

import "fmt"

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64

	// sh1106ColumnOffset centers 128 columns in the 132 column memory.
	sh1106ColumnOffset = 2
)

// SH1106 is a driver for the Sino Wealth SH1106 OLED controller.
func SH1106(width, height int) (*Chip, error) {
	if width == 0 {
		width = sh1106DefaultWidth
	}
	if height == 0 {
		height = sh1106DefaultHeight
	}

	var (
		multiplexRatio byte
		displayOffset  byte
	)
	switch {
	case width == 128 && height == 32:
		multiplexRatio, displayOffset = 0x1F, 0x0F
	case width == 128 && height == 64:
		multiplexRatio, displayOffset = 0x3F, 0x00
	default:
		return nil, fmt.Errorf("paged: SH1106 unsupported size %dx%d", width, height)
	}

	script := initScript(
		setDisplayOff,
		setSegmentRemap,
		setComScanDec,
		setNormalDisplay,
		setMultiplexRatio, multiplexRatio,
		setDisplayAllOnResume,
		setDisplayOffset, displayOffset,
		setDisplayClockDiv, 0xF0,
		setPrecharge, 0x22,
		setComPins, 0x12,
		setVComDetect, 0x20,
		setChargePump, 0x14,
		setContrast, 0x7F,
	)
	return newChip("SH1106", width, height, sh1106ColumnOffset, script), nil
}
