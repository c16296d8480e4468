package esc

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Target executes script operations.
type Target interface {
	// SetChipSelect selects chip n, 0 releases the chip select.
	SetChipSelect(n int) error

	// SetAddress selects data (true) or command (false) mode.
	SetAddress(data bool) error

	// SetReset drives the reset line.
	SetReset(gpio.Level) error

	// SetPower drives the power line.
	SetPower(gpio.Level) error

	// WriteByte sends a byte in the current mode.
	WriteByte(b byte) error

	// Sleep blocks the caller.
	Sleep(time.Duration)
}

// ResetHold is the time each reset level is held for a reset argument of n.
func ResetHold(n int) time.Duration {
	return time.Duration(n*16+2) * time.Millisecond
}

// Play replays s on t up to the end marker. The script is validated first, an
// invalid script has no effect. Play stops at the first target error.
func Play(t Target, s Script) error {
	ops, err := Decode(s)
	if err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Kind {
		case KindByte:
			err = t.WriteByte(op.Arg)
		case KindDelay:
			t.Sleep(time.Duration(op.Arg) * time.Millisecond)
		case KindPower:
			err = t.SetPower(gpio.Level(op.Arg != 0))
		case KindReset:
			hold := ResetHold(int(op.Arg))
			if err = t.SetReset(gpio.Low); err != nil {
				break
			}
			t.Sleep(hold)
			if err = t.SetReset(gpio.High); err != nil {
				break
			}
			t.Sleep(hold)
		case KindChipSelect:
			err = t.SetChipSelect(int(op.Arg))
		case KindAddress:
			err = t.SetAddress(op.Arg != 0)
		case KindEnd:
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
