package pixel

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/paged/draw"
)

// PageHeight is the number of pixel rows packed in one page byte.
const PageHeight = 8

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by the image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func (p *Buffer) fill(c color.Color) {
	var value byte
	if bit(c) {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Every byte holds 8 vertically adjacent pixels, the least significant bit
// being the top row. Rows of bytes form the pages of SSD1xxx and SH110x
// controllers.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	pages := (h + PageHeight - 1) / PageHeight
	return &MonoVerticalLSBImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, pages*w),
			Stride: w,
		},
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// Pages is the number of pages covering the image height.
func (p *MonoVerticalLSBImage) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Page returns the bytes of one page, sharing storage with the image.
func (p *MonoVerticalLSBImage) Page(page int) []byte {
	off := page * p.Stride
	return p.Pix[off : off+p.Stride : off+p.Stride]
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	var (
		pos = y/PageHeight*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return Mono{
		On: p.Pix[pos]&bit != 0,
	}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = y/PageHeight*p.Stride + x
		b   = byte(1) << uint(y&7)
	)
	if bit(c) {
		p.Pix[pos] |= b
	} else {
		p.Pix[pos] &^= b
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	p.fill(c)
}

// MonoPage is a single 8 pixel high band of a vertical LSB frame.
//
// The bounds are expressed in frame coordinates, so a renderer can draw the
// whole scene into every page and only the pixels of the current band stick.
type MonoPage struct {
	Buffer

	// Index of the page within the frame.
	Index int
}

// NewMonoPage allocates a page band of w columns, positioned at page 0.
func NewMonoPage(w int) *MonoPage {
	p := &MonoPage{
		Buffer: Buffer{
			Pix:    make([]byte, w),
			Stride: w,
		},
	}
	p.SetIndex(0)
	return p
}

func (p *MonoPage) String() string {
	return fmt.Sprintf("page %d (%d columns)", p.Index, len(p.Pix))
}

// SetIndex moves the band to another page. The pixels are left untouched.
func (p *MonoPage) SetIndex(index int) {
	p.Index = index
	y := index * PageHeight
	p.Rect = image.Rect(0, y, p.Stride, y+PageHeight)
}

func (p *MonoPage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoPage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{
		On: p.Pix[x]&(1<<uint(y-p.Rect.Min.Y)) != 0,
	}
}

func (p *MonoPage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	b := byte(1) << uint(y-p.Rect.Min.Y)
	if bit(c) {
		p.Pix[x] |= b
	} else {
		p.Pix[x] &^= b
	}
}

func (p *MonoPage) Fill(c color.Color) {
	p.fill(c)
}

// Interface checks.
var (
	_ Image = (*MonoVerticalLSBImage)(nil)
	_ Image = (*MonoPage)(nil)
)
