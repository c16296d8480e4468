package conn

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// CdevLine is an output line requested through the Linux GPIO character device.
type CdevLine struct {
	chip   string
	offset int
	l      *gpiocdev.Line
}

// OpenCdevLine requests offset on chip (such as "gpiochip0") as an output,
// driven to the initial level.
func OpenCdevLine(chip string, offset int, initial gpio.Level) (*CdevLine, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(levelValue(initial)), gpiocdev.WithConsumer("paged"))
	if err != nil {
		return nil, fmt.Errorf("conn: can't request line %s:%d: %w", chip, offset, err)
	}
	return &CdevLine{
		chip:   chip,
		offset: offset,
		l:      l,
	}, nil
}

func (c *CdevLine) String() string {
	return fmt.Sprintf("%s:%d", c.chip, c.offset)
}

func (c *CdevLine) Out(level gpio.Level) error {
	return c.l.SetValue(levelValue(level))
}

// Close releases the line.
func (c *CdevLine) Close() error {
	return c.l.Close()
}

func levelValue(level gpio.Level) int {
	if level {
		return 1
	}
	return 0
}
