// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RunnerConfig returns the runner timing from the program options.
// Batch runs are never throttled.
func RunnerConfig(opts options.Program) runner.Config {
	cfg := runner.Config{
		CyclesPerFrame: opts.CyclesPerFrame,
		FrameRate:      opts.FrameRate,
		MaxFrames:      opts.Frames,
	}
	if opts.Batch != "" {
		cfg.FrameRate = 0
	}
	return cfg
}
