// Package pixel implements the 1-bit color model and page oriented images used by paged OLED
// controllers.
//
// The images are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so anything able to draw into a [draw.Image] can render into a display page.
package pixel
