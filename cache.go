package paged

import (
	"fmt"
	"image"
	"log"

	"github.com/BeatGlow/paged/pixel"
)

// Span is a run of columns within a page.
type Span struct {
	Start int
	Count int
}

// Empty reports whether the span covers no column.
func (s Span) Empty() bool {
	return s.Count <= 0
}

// End is the column after the span.
func (s Span) End() int {
	return s.Start + s.Count
}

// Union is the smallest span covering s and o.
func (s Span) Union(o Span) Span {
	if s.Empty() {
		return o
	}
	if o.Empty() {
		return s
	}
	start, end := min(s.Start, o.Start), max(s.End(), o.End())
	return Span{Start: start, Count: end - start}
}

func (s Span) String() string {
	if s.Empty() {
		return "clean"
	}
	return fmt.Sprintf("%d+%d", s.Start, s.Count)
}

// diffSpan is the smallest span outside of which a and b are equal.
func diffSpan(a, b []byte) Span {
	start := 0
	for start < len(a) && a[start] == b[start] {
		start++
	}
	if start == len(a) {
		return Span{}
	}
	end := len(a)
	for end > start && a[end-1] == b[end-1] {
		end--
	}
	return Span{Start: start, Count: end - start}
}

// FrameCache keeps a shadow copy of the frame and only transfers the columns
// that changed since the last transfer.
//
// Pages are compared as they are submitted and the changes are sent once the
// last page of the frame is in. The first frame after MsgInit is sent in full.
type FrameCache struct {
	chip       PageDriver
	shadow     *pixel.MonoVerticalLSBImage
	dirty      []Span
	firstFrame bool
}

// NewFrameCache wraps chip with a frame cache.
func NewFrameCache(chip PageDriver) *FrameCache {
	size := chip.Size()
	shadow := pixel.NewMonoVerticalLSBImage(size.X, size.Y)
	return &FrameCache{
		chip:       chip,
		shadow:     shadow,
		dirty:      make([]Span, shadow.Pages()),
		firstFrame: true,
	}
}

func (c *FrameCache) String() string {
	return fmt.Sprintf("%v (cached)", c.chip)
}

// Size of the display in pixels.
func (c *FrameCache) Size() image.Point {
	return c.chip.Size()
}

// Shadow is the frame as last submitted.
func (c *FrameCache) Shadow() image.Image {
	return c.shadow
}

// Dirty is the span of page not yet transferred.
func (c *FrameCache) Dirty(page int) Span {
	return c.dirty[page]
}

// Handle the device messages.
func (c *FrameCache) Handle(d *Device, m Message) (bool, error) {
	switch m.(type) {
	case MsgInit:
		ok, err := c.chip.Handle(d, m)
		if err != nil {
			return ok, err
		}
		c.firstFrame = true
		clear(c.dirty)
		return ok, nil
	case MsgPageNext:
		page := d.Page()
		if _, err := c.Submit(page.Index, page.Pix); err != nil {
			return false, err
		}
		if page.Index == len(c.dirty)-1 {
			if err := c.Flush(d); err != nil {
				return false, err
			}
		}
		return d.Base(m)
	}
	return c.chip.Handle(d, m)
}

// Submit compares pix with the shadow of page, updates the shadow and marks
// the changed columns dirty. The returned span is the change of this call.
func (c *FrameCache) Submit(page int, pix []byte) (Span, error) {
	if page < 0 || page >= len(c.dirty) {
		return Span{}, fmt.Errorf("%w: %d", ErrPage, page)
	}
	row := c.shadow.Page(page)
	if len(pix) != len(row) {
		return Span{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrPageSize, len(row), len(pix))
	}
	span := diffSpan(row, pix)
	if !span.Empty() {
		copy(row[span.Start:span.End()], pix[span.Start:span.End()])
		c.dirty[page] = c.dirty[page].Union(span)
	}
	return span, nil
}

// Flush transfers the dirty spans, or every page in full for the first frame.
// A page that fails to transfer stays dirty.
func (c *FrameCache) Flush(d *Device) error {
	var (
		width = c.shadow.Rect.Dx()
		sent  bool
	)
	for page, span := range c.dirty {
		if c.firstFrame {
			span = Span{Count: width}
		}
		if span.Empty() {
			continue
		}
		if debug {
			log.Printf("paged: flush page %d columns %s", page, span)
		}
		sent = true
		if err := c.chip.SelectPage(d, page, span.Start); err != nil {
			_ = d.SetChipSelect(0)
			return pageError(page, err)
		}
		if err := d.WriteSequence(c.shadow.Page(page)[span.Start:span.End()]); err != nil {
			_ = d.SetChipSelect(0)
			return pageError(page, err)
		}
		c.dirty[page] = Span{}
	}
	if sent {
		if err := d.SetChipSelect(0); err != nil {
			return err
		}
	}
	c.firstFrame = false
	return nil
}

var _ PageDriver = (*Chip)(nil)
