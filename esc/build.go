package esc

// Raw encodes controller bytes, escaping 0xFF.
func Raw(p ...byte) []byte {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		if b == escape {
			out = append(out, escape, escape)
		} else {
			out = append(out, b)
		}
	}
	return out
}

// ChipSelect selects chip n, 0 releases the chip select.
func ChipSelect(n int) []byte {
	return []byte{escape, opChipSelect | byte(n&0x0f)}
}

// Address selects data (true) or command (false) mode.
func Address(data bool) []byte {
	if data {
		return []byte{escape, opAddress | 1}
	}
	return []byte{escape, opAddress}
}

// Reset pulses the reset line, holding each level for (n*16+2) milliseconds.
func Reset(n int) []byte {
	return []byte{escape, opReset | byte(n&0x0f)}
}

// Power switches the power line.
func Power(on bool) []byte {
	if on {
		return []byte{escape, opPower | 1}
	}
	return []byte{escape, opPower}
}

// Delay waits ms milliseconds. Delays over 127ms are split in several steps.
func Delay(ms int) []byte {
	var out []byte
	for ms > 0 {
		n := min(ms, opDelayMax)
		out = append(out, escape, byte(n))
		ms -= n
	}
	return out
}

// End terminates a script.
func End() []byte {
	return []byte{escape, opEnd}
}

// Build concatenates script parts, terminating the script if the last part is
// not an end marker.
func Build(parts ...[]byte) Script {
	var s Script
	for _, part := range parts {
		s = append(s, part...)
	}
	if n := len(s); n < 2 || s[n-2] != escape || s[n-1] != opEnd || (n >= 3 && escapedAt(s, n-2)) {
		s = append(s, End()...)
	}
	return s
}

// escapedAt reports whether the byte at i is the second byte of an escape pair.
func escapedAt(s Script, i int) bool {
	var run int
	for j := i - 1; j >= 0 && s[j] == escape; j-- {
		run++
	}
	return run%2 == 1
}
