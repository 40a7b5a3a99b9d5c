package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/surface"
)

func newSimScreen(t *testing.T, cols, rows int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(cols, rows)
	return NewScreen(sim), sim
}

func TestScreen_Resolution(t *testing.T) {
	s, _ := newSimScreen(t, 40, 12)
	defer s.Fini()

	w, h := s.Resolution()
	if w != 40 || h != 24 {
		t.Errorf("expected 40x24 pixels, got %dx%d", w, h)
	}
}

func TestScreen_PresentDrawsHalfBlocks(t *testing.T) {
	s, sim := newSimScreen(t, 4, 2)
	defer s.Fini()

	pix := make([]surface.Color, 4*4)
	if err := s.Present(pix, 4, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			r, _, _, _ := sim.GetContent(x, y)
			if r != HalfBlock {
				t.Errorf("cell (%d,%d) = %q, want %q", x, y, r, HalfBlock)
			}
		}
	}
}

func TestScreen_PresentLargerThanTerminal(t *testing.T) {
	s, _ := newSimScreen(t, 2, 1)
	defer s.Fini()

	pix := make([]surface.Color, 8*8)
	if err := s.Present(pix, 8, 8); err != nil {
		t.Errorf("oversized frames should be cropped, got %v", err)
	}
}

func TestScreen_PresentErrors(t *testing.T) {
	s, _ := newSimScreen(t, 4, 2)

	err := s.Present(make([]surface.Color, 3), 4, 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("short buffer: expected ErrUnavailable, got %v", err)
	}

	s.Fini()
	s.Fini()

	err = s.Present(make([]surface.Color, 16), 4, 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("finalized screen: expected ErrUnavailable, got %v", err)
	}
}

func TestScreen_IsSink(t *testing.T) {
	var _ surface.Sink = &Screen{}
}
