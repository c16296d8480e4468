package draw

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 8, 8))
	Fill(m, image.Rect(2, 2, 4, 12), color.White)
	if n := countSet(m); n != 12 {
		t.Errorf("expected 12 pixels set, got %d", n)
	}
}

func TestFontText(t *testing.T) {
	f, err := NewFont(nil, 12)
	if err != nil {
		t.Fatal(err)
	}

	m := image.NewGray(image.Rect(0, 0, 64, 16))
	end, err := f.Text(m, image.Pt(2, 12), "Hi", color.White)
	if err != nil {
		t.Fatal(err)
	}
	if end.X <= 2 || end.Y != 12 {
		t.Errorf("expected the pen to advance along the baseline, got %s", end)
	}
	if countSet(m) == 0 {
		t.Error("expected text pixels")
	}

	// a band above the text stays untouched
	band := image.NewGray(image.Rect(0, 0, 64, 16)).SubImage(image.Rect(0, 0, 64, 1)).(*image.Gray)
	if _, err = f.Text(band, image.Pt(2, 12), "Hi", color.White); err != nil {
		t.Fatal(err)
	}
	if countSet(band) != 0 {
		t.Error("expected text clipped to the destination bounds")
	}

	if _, err = NewFont([]byte("not a font"), 12); err == nil {
		t.Error("expected invalid font error")
	}
}

func TestIcon(t *testing.T) {
	const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<rect x="2" y="2" width="6" height="6" fill="#fff"/>
</svg>`
	m, err := Icon(strings.NewReader(square), 20)
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Bounds(); v != image.Rect(0, 0, 20, 20) {
		t.Fatalf("expected 20x20 icon, got %s", v)
	}
	if _, _, _, a := m.At(10, 10).RGBA(); a == 0 {
		t.Error("expected opaque center")
	}
	if _, _, _, a := m.At(1, 1).RGBA(); a != 0 {
		t.Error("expected transparent corner")
	}
}
