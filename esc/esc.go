// Package esc encodes and replays escape scripts.
//
// An escape script is a compact byte string mixing raw controller bytes with
// control operations: chip select, address (command/data) mode, reset pulse,
// power line, delay and end of script. Controller drivers describe their init,
// sleep and data window sequences as scripts and replay them through a
// [Target].
//
// The escape byte 0xFF is followed by an opcode:
//
//	0x00-0x7F  delay n milliseconds
//	0xBE-0xBF  power line off/on
//	0xC0-0xCF  reset pulse, (n*16+2) milliseconds per level
//	0xD0-0xDF  chip select n
//	0xE0-0xEF  address mode n
//	0xFE       end of script
//	0xFF       raw 0xFF byte
//
// Any other byte is sent as is.
package esc

import (
	"errors"
	"fmt"
	"strings"
)

const escape = 0xff

const (
	opDelayMax   = 0x7f
	opPower      = 0xbe
	opReset      = 0xc0
	opChipSelect = 0xd0
	opAddress    = 0xe0
	opEnd        = 0xfe
)

// Errors.
var (
	ErrTruncated = errors.New("esc: script ends inside an escape")
	ErrOpcode    = errors.New("esc: unknown opcode")
	ErrNoEnd     = errors.New("esc: script is not terminated")
)

// Script is an encoded escape script.
type Script []byte

// Kind of operation.
type Kind uint8

// Operation kinds.
const (
	KindByte Kind = iota
	KindDelay
	KindPower
	KindReset
	KindChipSelect
	KindAddress
	KindEnd
)

var kindNames = [...]string{"byte", "dly", "vcc", "rst", "cs", "adr", "end"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op is a decoded script operation.
type Op struct {
	Kind Kind
	Arg  byte
}

func (op Op) String() string {
	switch op.Kind {
	case KindByte:
		return fmt.Sprintf("%02x", op.Arg)
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("%s(%d)", op.Kind, op.Arg)
	}
}

// Decode validates s and returns its operations, up to and including the
// end marker.
func Decode(s Script) ([]Op, error) {
	var ops []Op
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != escape {
			ops = append(ops, Op{Kind: KindByte, Arg: b})
			continue
		}
		if i++; i == len(s) {
			return nil, ErrTruncated
		}
		op, err := decodeEscape(s[i])
		if err != nil {
			return nil, fmt.Errorf("%w %#02x at offset %d", err, s[i], i)
		}
		ops = append(ops, op)
		if op.Kind == KindEnd {
			return ops, nil
		}
	}
	return nil, ErrNoEnd
}

func decodeEscape(b byte) (Op, error) {
	switch {
	case b <= opDelayMax:
		return Op{Kind: KindDelay, Arg: b}, nil
	case b == opEnd:
		return Op{Kind: KindEnd}, nil
	case b == escape:
		return Op{Kind: KindByte, Arg: escape}, nil
	case b&0xf0 == opAddress:
		return Op{Kind: KindAddress, Arg: b & 0x0f}, nil
	case b&0xf0 == opChipSelect:
		return Op{Kind: KindChipSelect, Arg: b & 0x0f}, nil
	case b&0xf0 == opReset:
		return Op{Kind: KindReset, Arg: b & 0x0f}, nil
	case b&0xfe == opPower:
		return Op{Kind: KindPower, Arg: b & 0x01}, nil
	default:
		return Op{}, ErrOpcode
	}
}

// String disassembles the script, for debugging.
func (s Script) String() string {
	ops, err := Decode(s)
	if err != nil {
		return fmt.Sprintf("invalid script (%v): % x", err, []byte(s))
	}
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}
