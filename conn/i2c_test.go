package conn

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

func newTestI2C(t *testing.T, config *I2CConfig) (*I2C, *i2ctest.Record) {
	t.Helper()
	bus := &i2ctest.Record{}
	c, err := NewI2C(bus, config)
	if err != nil {
		t.Fatal(err)
	}
	return c, bus
}

func TestI2CConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *I2CConfig
		wantErr bool
	}{
		{"nil config (uses defaults)", nil, false},
		{"zero config", &I2CConfig{}, false},
		{"smallest payload", &I2CConfig{MaxPayload: 2}, false},
		{"payload without room for data", &I2CConfig{MaxPayload: 1}, true},
		{"negative payload", &I2CConfig{MaxPayload: -1}, true},
		{"two init signals", &I2CConfig{InitSignals: 2}, false},
		{"three init signals", &I2CConfig{InitSignals: 3}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			_, err := NewI2C(&i2ctest.Record{}, test.config)
			if (err != nil) != test.wantErr {
				it.Fatalf("expected error %t, got %v", test.wantErr, err)
			}
		})
	}
}

func TestI2CWriteSequenceChunking(t *testing.T) {
	for _, max := range []int{2, 3, 16, 32} {
		for _, size := range []int{0, 1, 2, 15, 16, 30, 31, 32, 62, 63, 128, 257} {
			t.Run(fmt.Sprintf("M=%d/L=%d", max, size), func(it *testing.T) {
				c, bus := newTestI2C(it, &I2CConfig{Addr: 0x3d, MaxPayload: max})
				if err := c.Init(); err != nil {
					it.Fatal(err)
				}
				if err := c.SetMode(true); err != nil {
					it.Fatal(err)
				}

				data := make([]byte, size)
				for i := range data {
					data[i] = byte(i * 7)
				}
				if err := c.WriteSequence(data); err != nil {
					it.Fatal(err)
				}

				want := (size + max - 2) / (max - 1)
				if len(bus.Ops) != want {
					it.Fatalf("expected %d transactions, got %d", want, len(bus.Ops))
				}
				var payload []byte
				for i, op := range bus.Ops {
					if op.Addr != 0x3d {
						it.Errorf("transaction %d: expected address 0x3d, got %#02x", i, op.Addr)
					}
					if len(op.W) > max {
						it.Errorf("transaction %d: %d bytes exceed maximum payload %d", i, len(op.W), max)
					}
					if len(op.W) < 2 {
						it.Fatalf("transaction %d: expected control byte and payload, got % x", i, op.W)
					}
					if op.W[0] != I2CData {
						it.Errorf("transaction %d: expected data control byte, got %#02x", i, op.W[0])
					}
					payload = append(payload, op.W[1:]...)
				}
				if !bytes.Equal(payload, data) {
					it.Errorf("payload mismatch:\nwant % x\ngot  % x", data, payload)
				}
			})
		}
	}
}

func TestI2CWriteByte(t *testing.T) {
	c, bus := newTestI2C(t, nil)
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteByte(0xae); err != nil {
		t.Fatal(err)
	}
	if err := c.SetMode(true); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteByte(0x55); err != nil {
		t.Fatal(err)
	}
	if err := c.SetMode(false); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteByte(0xaf); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{{I2CCommand, 0xae}, {I2CData, 0x55}, {I2CCommand, 0xaf}}
	if len(bus.Ops) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(bus.Ops))
	}
	for i, op := range bus.Ops {
		if op.Addr != DefaultI2CConfig.Addr {
			t.Errorf("transaction %d: expected default address, got %#02x", i, op.Addr)
		}
		if !bytes.Equal(op.W, want[i]) {
			t.Errorf("transaction %d: expected % x, got % x", i, want[i], op.W)
		}
	}
}

func TestI2CReadiness(t *testing.T) {
	tests := []struct {
		name    string
		signals int
		states  []State
	}{
		{"one signal", 1, []State{Ready, Ready}},
		{"two signals", 2, []State{Armed, Ready, Ready}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			c, bus := newTestI2C(it, &I2CConfig{InitSignals: test.signals})
			if c.State() != Uninitialized {
				it.Fatalf("expected %s, got %s", Uninitialized, c.State())
			}
			if err := c.WriteByte(0xae); !errors.Is(err, ErrNotReady) {
				it.Fatalf("expected ErrNotReady before init, got %v", err)
			}

			for i, want := range test.states {
				if c.State() != Ready {
					if err := c.SetMode(true); !errors.Is(err, ErrNotReady) {
						it.Errorf("expected SetMode to be rejected, got %v", err)
					}
					if err := c.WriteSequence([]byte{1, 2, 3}); !errors.Is(err, ErrNotReady) {
						it.Errorf("expected WriteSequence to be rejected, got %v", err)
					}
					if len(bus.Ops) != 0 {
						it.Fatalf("expected no bus traffic before ready, got %d transactions", len(bus.Ops))
					}
				}
				if err := c.Init(); err != nil {
					it.Fatal(err)
				}
				if c.State() != want {
					it.Fatalf("init %d: expected %s, got %s", i+1, want, c.State())
				}
			}

			if err := c.WriteByte(0xaf); err != nil {
				it.Fatal(err)
			}
			if len(bus.Ops) != 1 {
				it.Fatalf("expected 1 transaction, got %d", len(bus.Ops))
			}

			if err := c.Halt(); err != nil {
				it.Fatal(err)
			}
			if c.State() != Uninitialized {
				it.Fatalf("expected %s after halt, got %s", Uninitialized, c.State())
			}
			if err := c.WriteByte(0xae); !errors.Is(err, ErrNotReady) {
				it.Fatalf("expected ErrNotReady after halt, got %v", err)
			}
		})
	}
}

func TestI2CInitResetsMode(t *testing.T) {
	c, bus := newTestI2C(t, nil)
	_ = c.Init()
	_ = c.SetMode(true)
	_ = c.Halt()
	_ = c.Init()
	_ = c.WriteByte(0x81)
	if len(bus.Ops) != 1 || bus.Ops[0].W[0] != I2CCommand {
		t.Fatalf("expected command mode after re-init, got %+v", bus.Ops)
	}
}

type failingBus struct {
	txs   int
	speed physic.Frequency
}

func (b *failingBus) Tx(addr uint16, w, r []byte) error {
	b.txs++
	return errors.New("nack")
}

func (b *failingBus) SetSpeed(f physic.Frequency) error {
	b.speed = f
	return nil
}

func TestI2CBusErrors(t *testing.T) {
	t.Run("dropped", func(it *testing.T) {
		bus := &failingBus{}
		c, err := NewI2C(bus, nil)
		if err != nil {
			it.Fatal(err)
		}
		_ = c.Init()
		if bus.speed != 400*physic.KiloHertz {
			it.Errorf("expected bus speed to be set on init, got %s", bus.speed)
		}
		if err = c.WriteSequence(make([]byte, 100)); err != nil {
			it.Fatalf("expected bus errors to be dropped, got %v", err)
		}
		if bus.txs != 4 {
			it.Errorf("expected all 4 transactions attempted, got %d", bus.txs)
		}
	})
	t.Run("strict", func(it *testing.T) {
		bus := &failingBus{}
		c, err := NewI2C(bus, &I2CConfig{Strict: true})
		if err != nil {
			it.Fatal(err)
		}
		_ = c.Init()
		if err = c.WriteSequence(make([]byte, 100)); err == nil {
			it.Fatal("expected strict transport to return bus error")
		}
		if bus.txs != 1 {
			it.Errorf("expected to stop after first failed transaction, got %d", bus.txs)
		}
	})
}

// mcuBus mimics a TinyGo machine.I2C.
type mcuBus struct {
	writes [][]byte
}

func (b *mcuBus) ReadRegister(addr uint8, r uint8, buf []byte) error  { return nil }
func (b *mcuBus) WriteRegister(addr uint8, r uint8, buf []byte) error { return nil }

func (b *mcuBus) Tx(addr uint16, w, r []byte) error {
	b.writes = append(b.writes, append([]byte(nil), w...))
	return nil
}

func TestI2CTinyGoBus(t *testing.T) {
	mcu := &mcuBus{}
	var bus drivers.I2C = mcu
	c, err := NewI2C(bus, &I2CConfig{MaxPayload: 4})
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Init()
	if err = c.WriteSequence([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{0x00, 1, 2, 3}, {0x00, 4}}
	if len(mcu.writes) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(mcu.writes))
	}
	for i := range want {
		if !bytes.Equal(mcu.writes[i], want[i]) {
			t.Errorf("write %d: expected % x, got % x", i, want[i], mcu.writes[i])
		}
	}
}
