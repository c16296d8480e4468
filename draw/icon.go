package draw

import (
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Icon rasterizes an SVG document, scaled to fit a size by size square.
func Icon(r io.Reader, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	m := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, m, m.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return m, nil
}
