//go:build !linux

package conn

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// CdevLine is an output line requested through the Linux GPIO character device.
type CdevLine struct{}

// OpenCdevLine is only supported on Linux.
func OpenCdevLine(chip string, offset int, initial gpio.Level) (*CdevLine, error) {
	return nil, errors.New("conn: GPIO character device is only supported on Linux")
}

func (c *CdevLine) String() string { return "cdev" }

func (c *CdevLine) Out(gpio.Level) error { return errors.ErrUnsupported }

func (c *CdevLine) Close() error { return nil }
