package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "efipong.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WinningScore != game.WinningScore {
		t.Errorf("expected winning score %d, got %d", game.WinningScore, cfg.WinningScore)
	}
	if cfg.TargetFPS != DefaultFPS {
		t.Errorf("expected fps %d, got %d", DefaultFPS, cfg.TargetFPS)
	}
	if cfg.MaxDelta() != 50*time.Millisecond {
		t.Errorf("expected max delta 50ms, got %v", cfg.MaxDelta())
	}
	if mode, _ := cfg.GameMode(); mode != game.ModeScoring {
		t.Errorf("expected scoring mode, got %v", mode)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
mode = "wall"
winning_score = 5
target_fps = 30
max_delta_ms = 20
ball_size = 4
paddle_step = 9.5
log_level = "debug"

[colors]
ball = "#ff0000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode, _ := cfg.GameMode(); mode != game.ModeWallBounce {
		t.Errorf("expected wall mode, got %v", mode)
	}
	if cfg.WinningScore != 5 {
		t.Errorf("expected winning score 5, got %d", cfg.WinningScore)
	}
	if cfg.FrameTime() != time.Second/30 {
		t.Errorf("unexpected frame time %v", cfg.FrameTime())
	}
	if cfg.MaxDelta() != 20*time.Millisecond {
		t.Errorf("unexpected max delta %v", cfg.MaxDelta())
	}
	if cfg.Step(600) != 9.5 {
		t.Errorf("expected paddle step 9.5, got %f", cfg.Step(600))
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", lvl)
	}
	if cfg.Colors.Ball != "#ff0000" {
		t.Errorf("expected ball color to be read, got %q", cfg.Colors.Ball)
	}
	// untouched keys keep their defaults
	if cfg.MaxBounceAngleDeg != DefaultBounceAngle {
		t.Errorf("expected default bounce angle, got %f", cfg.MaxBounceAngleDeg)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "speed = 3\n")

	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "mode = \n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "doubles" }},
		{"zero winning score", func(c *Config) { c.WinningScore = 0 }},
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }},
		{"huge fps", func(c *Config) { c.TargetFPS = 5000 }},
		{"zero max delta", func(c *Config) { c.MaxDeltaMS = 0 }},
		{"negative ball", func(c *Config) { c.BallSize = -1 }},
		{"negative paddle height", func(c *Config) { c.PaddleHeight = -3 }},
		{"negative serve", func(c *Config) { c.ServeSpeed = -1 }},
		{"cap below serve", func(c *Config) { c.ServeSpeed = 100; c.MaxBallSpeed = 50 }},
		{"flat bounce angle", func(c *Config) { c.MaxBounceAngleDeg = 0 }},
		{"vertical bounce angle", func(c *Config) { c.MaxBounceAngleDeg = 90 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad color", func(c *Config) { c.Colors.Net = "grey" }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	if got := Path(); got != DefaultPath {
		t.Errorf("expected %q, got %q", DefaultPath, got)
	}

	t.Setenv(PathEnv, "/etc/efipong.toml")
	if got := Path(); got != "/etc/efipong.toml" {
		t.Errorf("expected env override, got %q", got)
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	cfg.BallSize = 7
	cfg.PaddleWidth = 10
	cfg.PaddleHeight = 60
	cfg.WallClearance = 20
	cfg.ServeSpeed = 300
	cfg.MaxBallSpeed = 1200

	ec, err := cfg.EngineConfig(800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ec.Width != 800 || ec.Height != 600 {
		t.Errorf("unexpected court %dx%d", ec.Width, ec.Height)
	}
	if ec.BallSize != 7 || ec.PaddleWidth != 10 || ec.PaddleHeight != 60 || ec.WallClearance != 20 {
		t.Errorf("explicit sizes not applied: %+v", ec)
	}
	if ec.ServeSpeed != 300 || ec.MaxBallSpeed != 1200 {
		t.Errorf("explicit speeds not applied: %+v", ec)
	}
	if math.Abs(ec.MaxBounceAngle-75*math.Pi/180) > 1e-12 {
		t.Errorf("expected 75 degrees in radians, got %f", ec.MaxBounceAngle)
	}
	if ec.WinningScore != game.WinningScore {
		t.Errorf("expected winning score %d, got %d", game.WinningScore, ec.WinningScore)
	}
}

func TestEngineConfig_ScalesWithDisplay(t *testing.T) {
	ec, err := Default().EngineConfig(160, 96)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := game.NewEngine(ec, fixedRandom{}); err != nil {
		t.Errorf("scaled layout rejected by the engine: %v", err)
	}
}

func TestEngineConfig_TooSmall(t *testing.T) {
	cfg := Default()
	cfg.PaddleHeight = 500

	_, err := cfg.EngineConfig(160, 96)
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

type fixedRandom struct{}

func (fixedRandom) Range(min, max float64) float64 { return (min + max) / 2 }
func (fixedRandom) Bool(float64) bool              { return false }
