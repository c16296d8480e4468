package main

import (
	"image"
	"strings"
	"time"

	"github.com/BeatGlow/paged/draw"
	"github.com/BeatGlow/paged/pixel"
)

const noteSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M12 3v10.55A4 4 0 1 0 14 17V7h4V3h-6z" fill="#fff"/>
</svg>`

// scene is the demo picture: a frame, a note icon, a label and a clock.
type scene struct {
	bounds image.Rectangle
	frame  *pixel.MonoVerticalLSBImage
	font   *draw.Font
	icon   image.Image
	label  string
}

func newScene(bounds image.Rectangle, label string) (*scene, error) {
	font, err := draw.NewFont(nil, float64(max(8, bounds.Dy()/4)))
	if err != nil {
		return nil, err
	}
	icon, err := draw.Icon(strings.NewReader(noteSVG), bounds.Dy()/2)
	if err != nil {
		return nil, err
	}
	return &scene{
		bounds: bounds,
		frame:  pixel.NewMonoVerticalLSBImage(bounds.Dx(), bounds.Dy()),
		font:   font,
		icon:   icon,
		label:  label,
	}, nil
}

// draw renders the scene into dst, in display coordinates. dst may be a single
// page, only the pixels within its bounds are drawn. The scene is drawn in
// full even if a text fails, the first text error is returned.
func (s *scene) draw(dst draw.Image, now time.Time, offset int) error {
	r := s.bounds
	draw.RoundedRectangle(dst, r, 3, pixel.On)

	iconSize := s.icon.Bounds().Size()
	at := image.Pt(r.Max.X-iconSize.X-2, r.Min.Y+2)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(iconSize)}, s.icon, image.Point{}, draw.Over)

	size := int(s.font.Size())
	_, err := s.font.Text(dst, image.Pt(3, 2+size), s.label, pixel.On)
	if _, terr := s.font.Text(dst, image.Pt(3, 4+2*size), now.Format("15:04:05"), pixel.On); err == nil {
		err = terr
	}

	// progress bar sweeping along the bottom edge
	w := r.Dx() - 8
	bar := image.Rect(4, r.Max.Y-6, 4+offset%w+1, r.Max.Y-3)
	draw.RoundedBox(dst, bar, 1, pixel.On)
	return err
}
