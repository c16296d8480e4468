package conn

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// LineByName looks up an output pin in the periph.io registry, such as
// "GPIO25". An empty name returns a nil Line, used for unconnected lines.
func LineByName(name string) (Line, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil || p == gpio.INVALID {
		return nil, fmt.Errorf("conn: GPIO pin %q not found", name)
	}
	return p, nil
}
