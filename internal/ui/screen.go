package ui

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/diegok/efipong/internal/surface"
)

// HalfBlock paints the top half of a cell with the foreground color and
// the bottom half with the background, giving two pixels per cell.
const HalfBlock = '▀'

// ErrUnavailable is returned when the terminal cannot take a frame.
var ErrUnavailable = errors.New("display unavailable")

// Screen is the terminal display. It satisfies surface.Sink.
type Screen struct {
	screen tcell.Screen
	closed bool
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// InitScreen takes over the controlling terminal.
func InitScreen() (*Screen, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.Wrap(ErrUnavailable, "stdout is not a terminal")
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	s.HideCursor()
	s.Clear()
	return NewScreen(s), nil
}

// Resolution is the pixel size of the terminal: one column per pixel and
// two pixels per row.
func (s *Screen) Resolution() (int, int) {
	w, h := s.screen.Size()
	return w, h * 2
}

// Present copies a width x height frame to the terminal. Pixels beyond
// the terminal are dropped.
func (s *Screen) Present(pix []surface.Color, width, height int) error {
	if s.closed {
		return errors.Wrap(ErrUnavailable, "screen finalized")
	}
	if width <= 0 || height <= 0 || len(pix) < width*height {
		return errors.Wrapf(ErrUnavailable, "frame %dx%d with %d pixels", width, height, len(pix))
	}

	cols, rows := s.screen.Size()
	for row := 0; row < rows && 2*row < height; row++ {
		top := pix[2*row*width:]
		bottom := top
		if 2*row+1 < height {
			bottom = pix[(2*row+1)*width:]
		}
		for x := 0; x < cols && x < width; x++ {
			style := tcell.StyleDefault.
				Foreground(tcellColor(top[x])).
				Background(tcellColor(bottom[x]))
			s.screen.SetContent(x, row, HalfBlock, nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// PollEvent blocks until the terminal has an event; nil after Fini.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Fini restores the terminal. Safe to call twice.
func (s *Screen) Fini() {
	if s.closed {
		return
	}
	s.closed = true
	s.screen.Fini()
}

func tcellColor(c surface.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
