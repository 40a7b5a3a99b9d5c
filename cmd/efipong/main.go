package main

import (
	"fmt"
	"io"
	"os"

	"github.com/diegok/efipong/internal/app"
	"github.com/diegok/efipong/internal/config"
)

func main() {
	if len(os.Args) > 1 {
		fmt.Fprintf(os.Stderr, "Error: efipong takes no arguments\n")
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := app.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApp(cfg, logger)
	if err := application.Run(); err != nil {
		logger.Error("exiting", "error", err)
		closeLogger(os.Stderr, closeLog)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !closeLogger(os.Stderr, closeLog) {
		os.Exit(1)
	}
}

// closeLogger flushes the log file and reports a failure on w.
func closeLogger(w io.Writer, closeLog func() error) bool {
	if err := closeLog(); err != nil {
		fmt.Fprintf(w, "Error: close log: %v\n", err)
		return false
	}
	return true
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  efipong")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "Settings are read from %s, or from the file named by $%s.\n", config.DefaultPath, config.PathEnv)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Keys:")
	fmt.Fprintln(os.Stderr, "  Space/Enter   serve")
	fmt.Fprintln(os.Stderr, "  w/s           left paddle")
	fmt.Fprintln(os.Stderr, "  Up/Down       right paddle (the only paddle in wall mode)")
	fmt.Fprintln(os.Stderr, "  q/Esc/Ctrl+C  quit")
}
