package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/config"
)

// NewLogger builds the process logger. The terminal is owned by the game,
// so records go to cfg.LogFile or nowhere. The returned close func is never
// nil.
func NewLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.LogFile)
		}
		w = f
		closeFn = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("session", uuid.NewString()), closeFn, nil
}
