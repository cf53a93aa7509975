package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/config"
	"github.com/lox/unoforbots/internal/randutil"
)

// Globals are the flags every command shares
type Globals struct {
	Config   string `short:"c" type:"path" default:"uno.hcl" env:"UNO_CONFIG" help:"HCL config file, ignored if missing"`
	LogLevel string `env:"UNO_LOG_LEVEL" help:"Log level (debug, info, warn, error), overrides the config"`
	NoColor  bool   `env:"UNO_NO_COLOR" help:"Disable colour output"`
}

// loadConfig reads the config file and applies flag overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger creates the logger commands hand to the packages they drive
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level(),
	})
}

// pickSeed returns the flag seed, then the configured one, then a random one
func pickSeed(flag *int64, configured int64) int64 {
	switch {
	case flag != nil:
		return *flag
	case configured != 0:
		return configured
	default:
		return randutil.RandomSeed()
	}
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return ctx
}
