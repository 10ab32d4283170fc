// Package media holds the monochrome frame buffer the simulator draws into, and its BMP export.
package media

import (
	"errors"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
	"tinygo.org/x/drivers"
)

// The size of the SSD1306 panel the screen is laid out for.
const (
	DefaultWidth  = 128
	DefaultHeight = 64
)

// Framebuffer is a one bit per pixel display: any non-black color lights a pixel.
type Framebuffer struct {
	w, h    int16
	px      []bool
	flushes int
}

var _ drivers.Displayer = (*Framebuffer)(nil)

func NewFramebuffer(w, h int16) (*Framebuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("invalid framebuffer size")
	}
	return &Framebuffer{
		w:  w,
		h:  h,
		px: make([]bool, int(w)*int(h)),
	}, nil
}

func (f *Framebuffer) Size() (x, y int16) {
	return f.w, f.h
}

// SetPixel ignores coordinates outside the buffer.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.px[int(y)*int(f.w)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

// Display counts flushes; the buffer itself is always current.
func (f *Framebuffer) Display() error {
	f.flushes++
	return nil
}

func (f *Framebuffer) Flushes() int {
	return f.flushes
}

func (f *Framebuffer) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.px[int(y)*int(f.w)+int(x)]
}

// Image copies the buffer into a grayscale image, lit pixels white.
func (f *Framebuffer) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, int(f.w), int(f.h)))
	for y := 0; y < int(f.h); y++ {
		for x := 0; x < int(f.w); x++ {
			if f.px[y*int(f.w)+x] {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// WriteBMP encodes the current buffer as a BMP.
func (f *Framebuffer) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, f.Image())
}
