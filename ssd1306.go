package paged

import "fmt"

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
)

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED controller.
func SSD1306(width, height int) (*Chip, error) {
	if width == 0 {
		width = ssd1306DefaultWidth
	}
	if height == 0 {
		height = ssd1306DefaultHeight
	}

	var (
		displayClockDiv byte
		comPins         byte
		colStart        int
	)
	switch {
	case width == 64 && height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case width == 64 && height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case width == 96 && height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case width == 128 && height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case width == 128 && height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return nil, fmt.Errorf("paged: SSD1306 unsupported size %dx%d", width, height)
	}

	script := initScript(
		setDisplayOff,
		setDisplayClockDiv, displayClockDiv,
		setMultiplexRatio, byte(height-1),
		setDisplayOffset, 0x00,
		setStartLine,
		setChargePump, 0x14,
		setMemoryMode, memoryModePage,
		setSegmentRemap,
		setComScanDec,
		setComPins, comPins,
		setContrast, 0xCF,
		setPrecharge, 0xF1,
		setVComDetect, 0x40,
		setDisplayAllOnResume,
		setNormalDisplay,
	)
	return newChip("SSD1306", width, height, colStart, script), nil
}
