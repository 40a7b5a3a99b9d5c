// Package surface implements the off-screen pixel buffer the game renders
// into every tick before handing it to the display in one call.
package surface

import (
	"github.com/pkg/errors"
)

// MaxPixels bounds a single allocation (a 4K frame and then some).
const MaxPixels = 4096 * 4096

var (
	// ErrAllocation means the framebuffer could not be reserved.
	ErrAllocation = errors.New("surface allocation failed")
	// ErrPresent means the display sink rejected a frame.
	ErrPresent = errors.New("surface present failed")
)

// Color is a 24-bit RGB pixel.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Sink receives whole frames. Implementations must not retain pix.
type Sink interface {
	Present(pix []Color, width, height int) error
}

// Surface is a row-major width*height color buffer.
type Surface struct {
	width      int
	height     int
	background Color
	pix        []Color
}

// New allocates a zeroed surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrAllocation, "invalid size %dx%d", width, height)
	}
	if width > MaxPixels/height {
		return nil, errors.Wrapf(ErrAllocation, "%dx%d exceeds %d pixels", width, height, MaxPixels)
	}

	return &Surface{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}, nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Pixels exposes the backing buffer.
func (s *Surface) Pixels() []Color { return s.pix }

// SetBackground changes the color used by Clear.
func (s *Surface) SetBackground(c Color) {
	s.background = c
}

// Background returns the color used by Clear.
func (s *Surface) Background() Color {
	return s.background
}

// At returns the pixel at (x, y), or the zero Color outside the surface.
func (s *Surface) At(x, y int) Color {
	if !s.inside(x, y) {
		return Color{}
	}
	return s.pix[y*s.width+x]
}

// Set writes one pixel; out-of-range coordinates are ignored.
func (s *Surface) Set(x, y int, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
}

// Clear fills the surface with the background color.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.background
	}
}

// FillRectangle draws a w*h rectangle at (x, y). When filled is false only a
// one pixel border is drawn. Anything outside the surface is clipped.
func (s *Surface) FillRectangle(x, y, w, h int, c Color, filled bool) {
	if w <= 0 || h <= 0 {
		return
	}

	if filled {
		s.fill(x, y, w, h, c)
		return
	}

	s.fill(x, y, w, 1, c)
	s.fill(x, y+h-1, w, 1, c)
	s.fill(x, y, 1, h, c)
	s.fill(x+w-1, y, 1, h, c)
}

func (s *Surface) fill(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, s.width), min(y+h, s.height)

	for py := y0; py < y1; py++ {
		row := s.pix[py*s.width : (py+1)*s.width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// Present hands the complete frame to sink. A sink failure is returned
// wrapped in ErrPresent; the surface itself is left untouched.
func (s *Surface) Present(sink Sink) error {
	if err := sink.Present(s.pix, s.width, s.height); err != nil {
		return errors.Wrapf(ErrPresent, "%v", err)
	}
	return nil
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}
