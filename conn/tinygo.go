package conn

import "tinygo.org/x/drivers"

// The TinyGo bus interfaces plug straight into the transports, so the same
// drivers run on microcontrollers:
//
//	machine.I2C0.Configure(machine.I2CConfig{})
//	t, err := conn.NewI2C(machine.I2C0, nil)
var (
	_ Bus    = drivers.I2C(nil)
	_ SPIBus = drivers.SPI(nil)
)

// Interface checks.
var (
	_ Transport = (*I2C)(nil)
	_ Transport = (*SPI)(nil)
)
