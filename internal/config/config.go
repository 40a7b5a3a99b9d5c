// Package config loads the optional efipong.toml file.
package config

import (
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/game"
	"github.com/diegok/efipong/internal/palette"
)

// Default values for configuration
const (
	DefaultPath        = "efipong.toml"
	PathEnv            = "EFIPONG_CONFIG"
	DefaultFPS         = 60
	DefaultMaxDeltaMS  = 50
	DefaultBounceAngle = 75.0
	DefaultLogLevel    = "info"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the application configuration. Zero sizes and speeds mean
// "scale with the display".
type Config struct {
	Mode              string      `toml:"mode"`
	WinningScore      int         `toml:"winning_score"`
	TargetFPS         int         `toml:"target_fps"`
	MaxDeltaMS        int         `toml:"max_delta_ms"`
	BallSize          int         `toml:"ball_size"`
	PaddleWidth       int         `toml:"paddle_width"`
	PaddleHeight      int         `toml:"paddle_height"`
	WallClearance     int         `toml:"wall_clearance"`
	PaddleStep        float64     `toml:"paddle_step"`
	ServeSpeed        float64     `toml:"serve_speed"`
	MaxBallSpeed      float64     `toml:"max_ball_speed"`
	MaxBounceAngleDeg float64     `toml:"max_bounce_angle_deg"`
	LogFile           string      `toml:"log_file"`
	LogLevel          string      `toml:"log_level"`
	Colors            palette.Hex `toml:"colors"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Mode:              game.ModeScoring.String(),
		WinningScore:      game.WinningScore,
		TargetFPS:         DefaultFPS,
		MaxDeltaMS:        DefaultMaxDeltaMS,
		MaxBounceAngleDeg: DefaultBounceAngle,
		LogLevel:          DefaultLogLevel,
	}
}

// Path returns the config file location.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Wrapf(ErrInvalid, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	if _, err := c.GameMode(); err != nil {
		return err
	}

	if c.WinningScore < 1 {
		return errors.Wrapf(ErrInvalid, "winning_score must be at least 1, got %d", c.WinningScore)
	}
	if c.TargetFPS < 1 || c.TargetFPS > 1000 {
		return errors.Wrapf(ErrInvalid, "target_fps must be between 1 and 1000, got %d", c.TargetFPS)
	}
	if c.MaxDeltaMS < 1 || c.MaxDeltaMS > 1000 {
		return errors.Wrapf(ErrInvalid, "max_delta_ms must be between 1 and 1000, got %d", c.MaxDeltaMS)
	}

	sizes := []struct {
		name string
		v    int
	}{
		{"ball_size", c.BallSize},
		{"paddle_width", c.PaddleWidth},
		{"paddle_height", c.PaddleHeight},
		{"wall_clearance", c.WallClearance},
	}
	for _, s := range sizes {
		if s.v < 0 {
			return errors.Wrapf(ErrInvalid, "%s must not be negative, got %d", s.name, s.v)
		}
	}

	speeds := []struct {
		name string
		v    float64
	}{
		{"paddle_step", c.PaddleStep},
		{"serve_speed", c.ServeSpeed},
		{"max_ball_speed", c.MaxBallSpeed},
	}
	for _, s := range speeds {
		if s.v < 0 {
			return errors.Wrapf(ErrInvalid, "%s must not be negative, got %g", s.name, s.v)
		}
	}
	if c.ServeSpeed > 0 && c.MaxBallSpeed > 0 && c.MaxBallSpeed < c.ServeSpeed {
		return errors.Wrapf(ErrInvalid, "max_ball_speed %g is below serve_speed %g", c.MaxBallSpeed, c.ServeSpeed)
	}

	if c.MaxBounceAngleDeg <= 0 || c.MaxBounceAngleDeg >= 90 {
		return errors.Wrapf(ErrInvalid, "max_bounce_angle_deg must be in (0, 90), got %g", c.MaxBounceAngleDeg)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := palette.Parse(c.Colors); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// GameMode maps the mode key onto the engine's Mode.
func (c *Config) GameMode() (game.Mode, error) {
	switch c.Mode {
	case "", game.ModeScoring.String():
		return game.ModeScoring, nil
	case game.ModeWallBounce.String():
		return game.ModeWallBounce, nil
	}
	return 0, errors.Wrapf(ErrInvalid, "mode must be %q or %q, got %q",
		game.ModeScoring, game.ModeWallBounce, c.Mode)
}

// Level parses log_level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Wrapf(ErrInvalid, "unknown log_level %q", c.LogLevel)
}

// FrameTime is the budget of a single tick.
func (c *Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.TargetFPS)
}

// MaxDelta is the largest step the physics is ever asked to take.
func (c *Config) MaxDelta() time.Duration {
	return time.Duration(c.MaxDeltaMS) * time.Millisecond
}

// Step returns how far one paddle key press moves a paddle on a court of
// the given height.
func (c *Config) Step(height int) float64 {
	if c.PaddleStep > 0 {
		return c.PaddleStep
	}
	return max(float64(height)/30, 1)
}

// EngineConfig builds the engine layout for a surface of width x height.
// Explicit values override the scaled defaults.
func (c *Config) EngineConfig(width, height int) (game.Config, error) {
	mode, err := c.GameMode()
	if err != nil {
		return game.Config{}, err
	}

	ec := game.DefaultConfig(width, height)
	ec.Mode = mode
	ec.WinningScore = c.WinningScore
	ec.MaxBounceAngle = c.MaxBounceAngleDeg * math.Pi / 180

	if c.BallSize > 0 {
		ec.BallSize = c.BallSize
	}
	if c.PaddleWidth > 0 {
		ec.PaddleWidth = c.PaddleWidth
	}
	if c.PaddleHeight > 0 {
		ec.PaddleHeight = c.PaddleHeight
	}
	if c.WallClearance > 0 {
		ec.WallClearance = c.WallClearance
	}
	if c.ServeSpeed > 0 {
		ec.ServeSpeed = c.ServeSpeed
	}
	if c.MaxBallSpeed > 0 {
		ec.MaxBallSpeed = c.MaxBallSpeed
	}
	// a serve speed raised past the scaled cap drags the cap with it
	if ec.MaxBallSpeed < ec.ServeSpeed {
		ec.MaxBallSpeed = ec.ServeSpeed
	}

	if err := ec.Validate(); err != nil {
		return game.Config{}, errors.Wrapf(err, "court %dx%d", width, height)
	}
	return ec, nil
}
