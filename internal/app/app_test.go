package app

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/config"
	"github.com/diegok/efipong/internal/game"
	"github.com/diegok/efipong/internal/ui"
)

func TestApp_SetupRejectsOversizedCourt(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(40, 12)
	screen := ui.NewScreen(sim)
	defer screen.Fini()

	cfg := config.Default()
	cfg.BallSize = 50
	a := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := a.setup(screen)
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid court") {
		t.Errorf("expected the error to name the court, got %q", err)
	}
	if strings.Contains(err.Error(), "terminal too small") {
		t.Errorf("a config problem must not be blamed on the terminal: %q", err)
	}
}
