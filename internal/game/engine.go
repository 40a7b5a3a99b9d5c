package game

import (
	"math"

	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/geom"
)

// WinningScore is the default number of points that ends a match.
const WinningScore = 11

// ErrInvalidConfig is returned by NewEngine for impossible court layouts.
var ErrInvalidConfig = errors.New("invalid engine config")

// Mode selects what happens when the ball reaches the left or right edge.
type Mode int

const (
	// ModeScoring has two paddles; an edge hit is a point for the far side.
	ModeScoring Mode = iota
	// ModeWallBounce has a single left paddle; every edge reflects.
	ModeWallBounce
)

func (m Mode) String() string {
	if m == ModeWallBounce {
		return "wall"
	}
	return "scoring"
}

// MatchState is the engine's position in the serve/play/finish cycle.
type MatchState int

const (
	AwaitingServe MatchState = iota
	Playing
	Finished
)

func (s MatchState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "awaiting-serve"
	}
}

// Events reports what happened during a Step.
type Events uint8

const (
	EventWallBounce Events = 1 << iota
	EventHitLeft
	EventHitRight
	EventPointLeft
	EventPointRight
	EventMatchOver
)

// Has reports whether all flags in f are set.
func (e Events) Has(f Events) bool {
	return e&f == f
}

// Random is the slice of the PRNG the engine needs when serving.
type Random interface {
	Range(min, max float64) float64
	Bool(p float64) bool
}

// Config describes the court. Sizes are in pixels, speeds in pixels per
// second and angles in radians.
type Config struct {
	Mode           Mode
	Width, Height  int
	BallSize       int
	PaddleWidth    int
	PaddleHeight   int
	WallClearance  int // gap between a paddle and its wall
	ServeSpeed     float64
	MaxBallSpeed   float64
	MaxBounceAngle float64
	WinningScore   int
}

// DefaultConfig returns a two paddle layout scaled to the given surface.
func DefaultConfig(width, height int) Config {
	return Config{
		Mode:           ModeScoring,
		Width:          width,
		Height:         height,
		BallSize:       max(height/40, 2),
		PaddleWidth:    max(width/100, 2),
		PaddleHeight:   max(height/6, 4),
		WallClearance:  max(width/40, 2),
		ServeSpeed:     float64(width) / 4,
		MaxBallSpeed:   float64(width) * 1.5,
		MaxBounceAngle: MaxBounceAngle,
		WinningScore:   WinningScore,
	}
}

// Validate checks that the paddles and ball fit on the court.
func (c Config) Validate() error {
	switch {
	case c.Mode != ModeScoring && c.Mode != ModeWallBounce:
		return errors.Wrapf(ErrInvalidConfig, "unknown mode %d", c.Mode)
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "court %dx%d", c.Width, c.Height)
	case c.BallSize <= 0 || c.BallSize > c.Width || c.BallSize > c.Height:
		return errors.Wrapf(ErrInvalidConfig, "ball size %d", c.BallSize)
	case c.PaddleWidth <= 0 || c.PaddleHeight <= 0 || c.PaddleHeight > c.Height:
		return errors.Wrapf(ErrInvalidConfig, "paddle %dx%d", c.PaddleWidth, c.PaddleHeight)
	// the two catch boxes must never touch a ball at the same time
	case c.WallClearance < 0 || 2*(c.WallClearance+c.PaddleWidth)+c.BallSize >= c.Width:
		return errors.Wrapf(ErrInvalidConfig, "wall clearance %d", c.WallClearance)
	case c.ServeSpeed <= 0 || c.MaxBallSpeed < c.ServeSpeed:
		return errors.Wrapf(ErrInvalidConfig, "speeds serve=%g max=%g", c.ServeSpeed, c.MaxBallSpeed)
	case c.MaxBounceAngle <= 0 || c.MaxBounceAngle >= math.Pi/2:
		return errors.Wrapf(ErrInvalidConfig, "bounce angle %g", c.MaxBounceAngle)
	case c.WinningScore < 1:
		return errors.Wrapf(ErrInvalidConfig, "winning score %d", c.WinningScore)
	}
	return nil
}

// Engine owns the ball, the paddles and the match state. It knows nothing
// about rendering or input devices.
type Engine struct {
	cfg     Config
	rng     Random
	state   MatchState
	ball    Ball
	paddles [2]Paddle
}

// NewEngine validates cfg and sets up a match awaiting its first serve.
func NewEngine(cfg Config, rng Random) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "no random source")
	}

	e := &Engine{cfg: cfg, rng: rng, state: AwaitingServe}
	e.paddles[Left] = Paddle{
		X:      float64(cfg.WallClearance),
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
	}
	e.paddles[Right] = Paddle{
		X:      float64(cfg.Width - cfg.WallClearance - cfg.PaddleWidth),
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
	}
	e.centerPaddles()

	e.ball = Ball{Size: cfg.BallSize}
	e.ball.X, e.ball.Y = e.courtCenter()
	return e, nil
}

func (e *Engine) Config() Config        { return e.cfg }
func (e *Engine) Mode() Mode            { return e.cfg.Mode }
func (e *Engine) State() MatchState     { return e.state }
func (e *Engine) Ball() Ball            { return e.ball }
func (e *Engine) Width() int            { return e.cfg.Width }
func (e *Engine) Height() int           { return e.cfg.Height }
func (e *Engine) HasPaddle(s Side) bool { return s == Left || e.cfg.Mode == ModeScoring }

// Paddle returns a copy of the paddle on side s; ok is false when the mode
// has no such paddle.
func (e *Engine) Paddle(s Side) (Paddle, bool) {
	if !e.HasPaddle(s) {
		return Paddle{}, false
	}
	return e.paddles[s], true
}

// Winner returns the side that reached the winning score.
func (e *Engine) Winner() (Side, bool) {
	if e.state != Finished {
		return Left, false
	}
	if e.paddles[Left].Score >= e.cfg.WinningScore {
		return Left, true
	}
	return Right, true
}

// MovePaddle moves a paddle by delta pixels, clamped to the court. It is
// not gated on the match state.
func (e *Engine) MovePaddle(s Side, delta float64) {
	if !e.HasPaddle(s) {
		return
	}
	e.paddles[s].Move(delta, e.cfg.Height)
}

// Serve starts a rally. Scores reset only when coming from Finished.
// Serving while Playing does nothing.
func (e *Engine) Serve() {
	switch e.state {
	case Playing:
		return
	case Finished:
		e.paddles[Left].Score = 0
		e.paddles[Right].Score = 0
		e.centerPaddles()
	}

	dir := 1.0
	if e.cfg.Mode == ModeScoring && e.rng.Bool(0.5) {
		dir = -1
	}

	x, y := e.courtCenter()
	e.ball.Serve(x, y, dir, e.cfg.ServeSpeed, e.rng.Range(-e.cfg.ServeSpeed, e.cfg.ServeSpeed))
	e.state = Playing
}

// Step advances the simulation by dt seconds. It does nothing unless the
// match is being played. Long steps are split so the ball never travels
// further than a paddle's catch box in one go; a point ends the step.
func (e *Engine) Step(dt float64) Events {
	if e.state != Playing {
		return 0
	}

	n := e.substeps(dt)
	sub := dt / float64(n)

	var ev Events
	for i := 0; i < n; i++ {
		ev |= e.step(sub)
		if e.state != Playing || ev&(EventPointLeft|EventPointRight) != 0 {
			break
		}
	}
	return ev
}

// substeps is how many pieces dt must be cut into so each piece moves the
// ball at most WallClearance+PaddleWidth pixels horizontally
func (e *Engine) substeps(dt float64) int {
	reach := float64(e.cfg.WallClearance + e.cfg.PaddleWidth)
	travel := math.Abs(e.ball.VX * dt)
	if travel <= reach || math.IsInf(travel, 0) || math.IsNaN(travel) {
		return 1
	}
	return int(math.Ceil(travel / reach))
}

func (e *Engine) step(dt float64) Events {
	var ev Events
	e.ball.Move(dt)

	if e.ball.BounceVertical(e.cfg.Height) {
		ev |= EventWallBounce
	}

	switch e.cfg.Mode {
	case ModeWallBounce:
		if e.ball.BounceHorizontal(e.cfg.Width) {
			ev |= EventWallBounce
		}
	case ModeScoring:
		ev |= e.checkScore()
	}

	if e.paddles[Left].Score >= e.cfg.WinningScore || e.paddles[Right].Score >= e.cfg.WinningScore {
		e.state = Finished
		return ev | EventMatchOver
	}

	return ev | e.checkPaddleCollisions()
}

// checkScore handles the ball reaching the left or right edge
func (e *Engine) checkScore() Events {
	switch {
	case e.ball.X >= float64(e.cfg.Width-e.ball.Size):
		e.award(Left)
		return EventPointLeft
	case e.ball.X <= 0:
		e.award(Right)
		return EventPointRight
	}
	return 0
}

// award gives scorer a point and serves toward the side that conceded
func (e *Engine) award(scorer Side) {
	e.paddles[scorer].Score++

	conceding := e.paddles[scorer.Opposite()]
	size := float64(e.ball.Size)
	x, _ := e.courtCenter()
	y := geom.Clamp(conceding.CenterY()-size/2, 0, float64(e.cfg.Height)-size)

	dir := 1.0
	if scorer == Right {
		dir = -1
	}
	e.ball.Serve(x, y, dir, e.cfg.ServeSpeed, e.rng.Range(-e.cfg.ServeSpeed, e.cfg.ServeSpeed))
}

// checkPaddleCollisions bounces the ball off any paddle it reached
func (e *Engine) checkPaddleCollisions() Events {
	var ev Events
	for _, side := range []Side{Left, Right} {
		if !e.HasPaddle(side) {
			continue
		}

		// Only collide if the ball is moving toward the paddle
		if side == Left && e.ball.VX >= 0 || side == Right && e.ball.VX <= 0 {
			continue
		}

		p := &e.paddles[side]
		if !e.ball.Box().Overlaps(p.Reach(side, e.cfg.WallClearance)) {
			continue
		}

		// Snap flush against the inner face
		if side == Left {
			e.ball.X = p.X + float64(p.Width)
		} else {
			e.ball.X = p.X - float64(e.ball.Size)
		}

		speed := math.Min(e.ball.Speed()*SpeedIncrement, e.cfg.MaxBallSpeed)
		e.ball.BounceOffPaddle(HitFor(side), p.CenterY(), p.Height, e.cfg.MaxBounceAngle, speed)

		if side == Left {
			ev |= EventHitLeft
		} else {
			ev |= EventHitRight
		}
	}
	return ev
}

func (e *Engine) centerPaddles() {
	y := float64(e.cfg.Height-e.cfg.PaddleHeight) / 2
	e.paddles[Left].Y = y
	e.paddles[Right].Y = y
}

// courtCenter returns the top-left position that centres the ball
func (e *Engine) courtCenter() (float64, float64) {
	size := float64(e.cfg.BallSize)
	return float64(e.cfg.Width)/2 - size/2, float64(e.cfg.Height)/2 - size/2
}
