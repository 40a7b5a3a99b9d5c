package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/diegok/efipong/internal/clock"
	"github.com/diegok/efipong/internal/game"
	"github.com/diegok/efipong/internal/input"
	"github.com/diegok/efipong/internal/surface"
	"github.com/diegok/efipong/internal/ui"
)

// Display is where finished frames go.
type Display interface {
	surface.Sink
	Resolution() (width, height int)
}

// LoopOptions wires a Loop to its collaborators. Every field is required
// except Logger.
type LoopOptions struct {
	Engine     *game.Engine
	Surface    *surface.Surface
	Renderer   *ui.Renderer
	Display    Display
	Input      input.Poller
	Stopwatch  *clock.Stopwatch
	Stall      func(time.Duration)
	FrameTime  time.Duration
	PaddleStep float64
	Logger     *slog.Logger
}

// Loop runs the fixed cadence of input, physics, render and present. It
// is single threaded; nothing in it is safe for concurrent use.
type Loop struct {
	engine   *game.Engine
	surface  *surface.Surface
	renderer *ui.Renderer
	display  Display
	input    input.Poller
	watch    *clock.Stopwatch
	stall    func(time.Duration)
	frame    time.Duration
	step     float64
	log      *slog.Logger

	quit    bool
	frames  uint64
	dropped uint64
}

func NewLoop(opts LoopOptions) *Loop {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		engine:   opts.Engine,
		surface:  opts.Surface,
		renderer: opts.Renderer,
		display:  opts.Display,
		input:    opts.Input,
		watch:    opts.Stopwatch,
		stall:    opts.Stall,
		frame:    opts.FrameTime,
		step:     opts.PaddleStep,
		log:      log,
	}
}

// Quit reports whether a quit key has been seen.
func (l *Loop) Quit() bool { return l.quit }

// Frames is the number of frames presented successfully.
func (l *Loop) Frames() uint64 { return l.frames }

// Dropped is the number of frames the display refused.
func (l *Loop) Dropped() uint64 { return l.dropped }

// Run ticks until a quit key is pressed or ctx is cancelled. Cancellation
// is noticed between ticks.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("loop started", "frame_time", l.frame, "mode", l.engine.Mode())
	for !l.quit {
		select {
		case <-ctx.Done():
			l.log.Info("loop cancelled", "frames", l.frames, "dropped", l.dropped)
			return nil
		default:
		}
		l.Tick()
	}
	l.log.Info("quit requested", "frames", l.frames, "dropped", l.dropped)
	return nil
}

// Tick runs one frame.
func (l *Loop) Tick() {
	l.drainInput()

	dt := l.watch.Lap()
	if l.engine.State() == game.Playing {
		l.logEvents(l.engine.Step(dt))
	}

	l.renderer.Render(l.surface, l.engine)
	if err := l.surface.Present(l.display); err != nil {
		l.dropped++
		l.log.Warn("frame dropped", "error", err, "dropped", l.dropped)
	} else {
		l.frames++
	}

	l.pace()
}

// drainInput applies every pending event before the physics advances
func (l *Loop) drainInput() {
	for {
		ev, ok := l.input.PollEvent()
		if !ok {
			return
		}
		l.handle(ev)
	}
}

func (l *Loop) handle(ev input.Event) {
	switch {
	case isQuit(ev):
		l.quit = true
	case isServe(ev):
		if l.engine.State() != game.Playing {
			l.engine.Serve()
			l.log.Debug("serve", "ball", l.engine.Ball())
		}
	default:
		// paddle keys only count during a rally
		if l.engine.State() != game.Playing {
			return
		}
		if side, dir, ok := l.paddleCommand(ev); ok {
			l.engine.MovePaddle(side, dir*l.step)
		}
	}
}

// paddleCommand maps a key to a paddle and direction (-1 up, +1 down)
func (l *Loop) paddleCommand(ev input.Event) (game.Side, float64, bool) {
	switch ev.Kind {
	case input.KindChar:
		switch ev.Char {
		case 'w', 'W':
			return game.Left, -1, true
		case 's', 'S':
			return game.Left, 1, true
		}
	case input.KindSpecial:
		side := game.Right
		if l.engine.Mode() == game.ModeWallBounce {
			side = game.Left
		}
		switch ev.Key {
		case input.KeyUp:
			return side, -1, true
		case input.KeyDown:
			return side, 1, true
		}
	}
	return game.Left, 0, false
}

func (l *Loop) logEvents(ev game.Events) {
	if ev == 0 {
		return
	}
	left, _ := l.engine.Paddle(game.Left)
	right, _ := l.engine.Paddle(game.Right)

	if ev.Has(game.EventWallBounce) {
		l.log.Debug("wall bounce", "ball", l.engine.Ball())
	}
	if ev.Has(game.EventHitLeft) || ev.Has(game.EventHitRight) {
		side := game.Left
		if ev.Has(game.EventHitRight) {
			side = game.Right
		}
		ball := l.engine.Ball()
		l.log.Debug("paddle hit", "side", side, "speed", ball.Speed())
	}

	switch {
	case ev.Has(game.EventMatchOver):
		winner, _ := l.engine.Winner()
		l.log.Debug("match over", "winner", winner, "left", left.Score, "right", right.Score)
	case ev.Has(game.EventPointLeft), ev.Has(game.EventPointRight):
		l.log.Debug("point", "left", left.Score, "right", right.Score)
	}
}

// pace stalls for whatever is left of the frame budget
func (l *Loop) pace() {
	if l.stall == nil || l.frame <= 0 {
		return
	}
	spent := time.Duration(l.watch.Elapsed() * float64(time.Second))
	if remaining := l.frame - spent; remaining > 0 {
		l.stall(remaining)
	}
}

func isQuit(ev input.Event) bool {
	if ev.Kind != input.KindChar {
		return false
	}
	switch ev.Char {
	case 'q', 'Q', input.CharEscape, input.CharCtrlC:
		return true
	}
	return false
}

func isServe(ev input.Event) bool {
	return ev.Kind == input.KindChar && (ev.Char == ' ' || ev.Char == input.CharEnter)
}
