package esc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// trace records target calls.
type trace struct {
	calls []string
	fail  string
}

func (t *trace) record(call string) error {
	t.calls = append(t.calls, call)
	if call == t.fail {
		return errors.New("failed " + call)
	}
	return nil
}

func (t *trace) SetChipSelect(n int) error { return t.record(fmt.Sprintf("cs %d", n)) }
func (t *trace) SetAddress(data bool) error { return t.record(fmt.Sprintf("adr %t", data)) }
func (t *trace) SetReset(l gpio.Level) error { return t.record("rst " + l.String()) }
func (t *trace) SetPower(l gpio.Level) error { return t.record("vcc " + l.String()) }
func (t *trace) WriteByte(b byte) error { return t.record(fmt.Sprintf("%02x", b)) }
func (t *trace) Sleep(d time.Duration) { t.calls = append(t.calls, "sleep "+d.String()) }

func TestPlay(t *testing.T) {
	s := Build(
		ChipSelect(0),
		Address(false),
		Reset(1),
		ChipSelect(1),
		Raw(0xfd, 0x12, 0xae),
		Power(true),
		Delay(50),
		Raw(0xaf),
		ChipSelect(0),
	)
	var tr trace
	if err := Play(&tr, s); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"cs 0",
		"adr false",
		"rst Low", "sleep 18ms", "rst High", "sleep 18ms",
		"cs 1",
		"fd", "12", "ae",
		"vcc High",
		"sleep 50ms",
		"af",
		"cs 0",
	}
	if !reflect.DeepEqual(tr.calls, want) {
		t.Errorf("unexpected calls:\nwant %q\ngot  %q", want, tr.calls)
	}
}

func TestPlayStopsAtEnd(t *testing.T) {
	s := Script{0x01, escape, opEnd, 0x02}
	var tr trace
	if err := Play(&tr, s); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tr.calls, []string{"01"}) {
		t.Errorf("expected only bytes before end, got %q", tr.calls)
	}
}

func TestPlayInvalid(t *testing.T) {
	tests := []struct {
		name string
		s    Script
		want error
	}{
		{"empty", Script{}, ErrNoEnd},
		{"unterminated", Script{0xae, 0xaf}, ErrNoEnd},
		{"truncated escape", Script{0xae, escape}, ErrTruncated},
		{"unknown opcode", Script{0xae, escape, 0x80, escape, opEnd}, ErrOpcode},
		{"reserved opcode", Script{escape, 0xf0, escape, opEnd}, ErrOpcode},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			var tr trace
			if err := Play(&tr, test.s); !errors.Is(err, test.want) {
				it.Fatalf("expected %v, got %v", test.want, err)
			}
			if len(tr.calls) != 0 {
				it.Errorf("expected no side effects, got %q", tr.calls)
			}
		})
	}
}

func TestPlayTargetError(t *testing.T) {
	s := Build(Raw(0x01, 0x02, 0x03))
	tr := trace{fail: "02"}
	if err := Play(&tr, s); err == nil {
		t.Fatal("expected target error")
	}
	if !reflect.DeepEqual(tr.calls, []string{"01", "02"}) {
		t.Errorf("expected to stop at failing byte, got %q", tr.calls)
	}
}

func TestRawEscaping(t *testing.T) {
	s := Build(Raw(0xff, 0x10))
	var tr trace
	if err := Play(&tr, s); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tr.calls, []string{"ff", "10"}) {
		t.Errorf("expected raw 0xff to round trip, got %q", tr.calls)
	}
}

func TestDelaySplit(t *testing.T) {
	var tr trace
	if err := Play(&tr, Build(Delay(300))); err != nil {
		t.Fatal(err)
	}
	var total time.Duration
	for _, call := range tr.calls {
		d, err := time.ParseDuration(strings.TrimPrefix(call, "sleep "))
		if err != nil {
			t.Fatalf("unexpected call %q", call)
		}
		total += d
	}
	if total != 300*time.Millisecond {
		t.Errorf("expected 300ms total delay, got %s", total)
	}
	if len(Delay(0)) != 0 {
		t.Error("expected zero delay to encode nothing")
	}
}

func TestBuildTermination(t *testing.T) {
	tests := []struct {
		name  string
		parts [][]byte
		want  Script
	}{
		{"empty", nil, Script{escape, opEnd}},
		{"already terminated", [][]byte{Raw(0xae), End()}, Script{0xae, escape, opEnd}},
		{"raw 0xff then 0xfe", [][]byte{Raw(0xff, 0xfe)}, Script{escape, escape, opEnd, escape, opEnd}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if s := Build(test.parts...); !reflect.DeepEqual(s, test.want) {
				it.Errorf("expected % x, got % x", []byte(test.want), []byte(s))
			}
		})
	}
}

func TestScriptString(t *testing.T) {
	s := Build(ChipSelect(1), Address(true), Raw(0xb0), Delay(5))
	if v, want := s.String(), "cs(1) adr(1) b0 dly(5) end"; v != want {
		t.Errorf("expected %q, got %q", want, v)
	}
	if v := (Script{0xae}).String(); !strings.HasPrefix(v, "invalid script") {
		t.Errorf("expected invalid script, got %q", v)
	}
}

func TestResetHold(t *testing.T) {
	for n, want := range map[int]time.Duration{
		0:  2 * time.Millisecond,
		1:  18 * time.Millisecond,
		15: 242 * time.Millisecond,
	} {
		if v := ResetHold(n); v != want {
			t.Errorf("ResetHold(%d): expected %s, got %s", n, want, v)
		}
	}
}
