package app

import (
	"context"
	"crypto/rand"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/clock"
	"github.com/diegok/efipong/internal/config"
	"github.com/diegok/efipong/internal/game"
	"github.com/diegok/efipong/internal/palette"
	"github.com/diegok/efipong/internal/prng"
	"github.com/diegok/efipong/internal/surface"
	"github.com/diegok/efipong/internal/ui"
)

// CalibrationInterval is how long the clock is measured at startup.
const CalibrationInterval = 100 * time.Millisecond

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg    *config.Config
	log    *slog.Logger
	screen *ui.Screen

	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Run takes over the terminal, plays until the player quits or a signal
// arrives, then restores the terminal.
func (a *App) Run() error {
	screen, err := ui.InitScreen()
	if err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	a.screen = screen
	defer a.cleanup()

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-a.sigChan:
			a.log.Info("signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	loop, err := a.setup(screen)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

// setup builds the loop around an acquired display
func (a *App) setup(screen *ui.Screen) (*Loop, error) {
	w, h := screen.Resolution()
	a.log.Info("display acquired", "width", w, "height", h)

	surf, err := surface.New(w, h)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate surface")
	}

	engCfg, err := a.cfg.EngineConfig(w, h)
	if err != nil {
		return nil, errors.Wrap(err, "invalid court")
	}

	seed, err := prng.ReadSeed(rand.Reader)
	if err != nil {
		a.log.Warn("no entropy, using fixed seed", "error", err, "seed", seed)
	}

	engine, err := game.NewEngine(engCfg, prng.New(seed))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	pal, err := palette.Parse(a.cfg.Colors)
	if err != nil {
		return nil, errors.Wrap(err, "invalid colors")
	}

	src := clock.NewMonotonic()
	tps := clock.Calibrate(src, time.Sleep, CalibrationInterval)
	a.log.Debug("clock calibrated", "ticks_per_second", tps)

	return NewLoop(LoopOptions{
		Engine:     engine,
		Surface:    surf,
		Renderer:   ui.NewRenderer(pal),
		Display:    screen,
		Input:      ui.NewKeyboard(screen, ui.DefaultKeyBuffer),
		Stopwatch:  clock.NewStopwatch(src, tps, a.cfg.MaxDelta()),
		Stall:      time.Sleep,
		FrameTime:  a.cfg.FrameTime(),
		PaddleStep: a.cfg.Step(h),
		Logger:     a.log,
	}), nil
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}
}
