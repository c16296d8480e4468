package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Font renders text with a TrueType font at a fixed size.
type Font struct {
	ctx  *freetype.Context
	size float64
}

// NewFont parses a TrueType font. A nil ttf selects Go Regular.
func NewFont(ttf []byte, size float64) (*Font, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	return &Font{
		ctx:  ctx,
		size: size,
	}, nil
}

// Size of the font in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Text draws s into dst with its baseline starting at pt and returns the
// point where the next character would start.
func (f *Font) Text(dst Image, pt image.Point, s string, c color.Color) (image.Point, error) {
	f.ctx.SetDst(dst)
	f.ctx.SetClip(dst.Bounds())
	f.ctx.SetSrc(image.NewUniform(c))
	end, err := f.ctx.DrawString(s, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return pt, err
	}
	return image.Pt(end.X.Round(), end.Y.Round()), nil
}
