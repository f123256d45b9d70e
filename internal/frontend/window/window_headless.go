//go:build headless

// Package window implements a desktop window frontend with keyboard input.
package window

import (
	"context"
	"errors"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Available reports whether the window frontend is part of the build.
const Available = false

var errUnavailable = errors.New("window frontend is not available in headless builds")

// Options configures the window.
type Options struct {
	Title      string
	Scale      int
	FrameRate  int
	Fullscreen bool
	StatusBar  bool
}

// Window is a placeholder for builds without display support.
type Window struct{}

// New returns a window that fails to run.
func New(*log.Logger, Options) *Window {
	return &Window{}
}

// Run returns an error as no window can be opened.
func (w *Window) Run(context.Context, *runner.Runner) error {
	return errUnavailable
}

// Present discards the frame.
func (w *Window) Present(machine.FrameBuffer) error {
	return errUnavailable
}

// Keypad requests to quit.
func (w *Window) Keypad() (machine.Keypad, bool) {
	return machine.Keypad{}, true
}
