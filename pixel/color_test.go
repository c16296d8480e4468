package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				t.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				t.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				t.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestMonoModel(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want Mono
	}{
		{"black", color.Black, Off},
		{"white", color.White, On},
		{"transparent", color.Transparent, Off},
		{"dark gray", color.Gray{Y: 0x40}, Off},
		{"light gray", color.Gray{Y: 0xc0}, On},
		{"pure green", color.RGBA{G: 0xff, A: 0xff}, On},
		{"pure blue", color.RGBA{B: 0xff, A: 0xff}, Off},
		{"mono on", On, On},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := MonoModel.Convert(test.c); v != test.want {
				it.Errorf("expected %v, got %v", test.want, v)
			}
		})
	}
}
