package paged

import "fmt"

const (
	ssd1309DefaultWidth  = 128
	ssd1309DefaultHeight = 64
)

// SSD1309 is a driver for the Solomon Systech SSD1309 OLED controller.
func SSD1309(width, height int) (*Chip, error) {
	if width == 0 {
		width = ssd1309DefaultWidth
	}
	if height == 0 {
		height = ssd1309DefaultHeight
	}
	if width != 128 || height != 64 {
		return nil, fmt.Errorf("paged: SSD1309 unsupported size %dx%d", width, height)
	}

	script := initScript(
		setCommandLock, 0x12,
		setDisplayOff,
		setDisplayClockDiv, 0xA0,
		setMultiplexRatio, 0x3F,
		0x3D, 0x00, // display offset
		setStartLine,
		setSegmentRemap,
		setComScanDec,
		setComPins, 0x12,
		setContrast, 0xDF,
		setPrecharge, 0x82,
		setVComDetect, 0x34,
		setDisplayAllOnResume,
		setNormalDisplay,
	)
	return newChip("SSD1309", width, height, 0, script), nil
}
