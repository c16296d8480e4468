package paged

import "fmt"

const (
	ssd1305DefaultWidth  = 128
	ssd1305DefaultHeight = 32
)

// SSD1305 is a driver for the Solomon Systech SSD1305 OLED controller.
func SSD1305(width, height int) (*Chip, error) {
	if width == 0 {
		width = ssd1305DefaultWidth
	}
	if height == 0 {
		height = ssd1305DefaultHeight
	}

	var colStart int
	switch {
	case width == 128 && height == 32:
		colStart = 0
	case width == 128 && height == 64:
		colStart = 4
	default:
		return nil, fmt.Errorf("paged: SSD1305 unsupported size %dx%d", width, height)
	}

	script := initScript(
		setDisplayOff,
		setLowColumn|byte(colStart&0x0f),
		setHighColumn|byte(colStart>>4),
		setStartLine,
		setSegmentRemap,
		setNormalDisplay,
		setMultiplexRatio, byte(height-1),
		setMasterConfig, 0x8E,
		setComScanDec,
		setDisplayOffset, 0x00,
		setDisplayClockDiv, 0xF0,
		setAreaColor, 0x05,
		setPrecharge, 0xF1,
		setComPins, 0x12,
		setLUT, 0x3F, 0x3F, 0x3F, 0x3F,
		setContrast, 0x7F,
		setDisplayAllOnResume,
	)
	return newChip("SSD1305", width, height, colStart, script), nil
}
