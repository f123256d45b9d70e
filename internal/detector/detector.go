// Package detector handles the frontend selection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Environment describes the capabilities of the host.
type Environment struct {
	WindowAvailable bool                    // binary was built with window support
	Getenv          func(key string) string // environment variable lookup
	IsTerminal      func() bool             // standard input and output are a terminal
	OS              string
}

// HostEnvironment returns the environment of the running process.
func HostEnvironment() Environment {
	return Environment{
		WindowAvailable: window.Available,
		Getenv:          os.Getenv,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		OS: runtime.GOOS,
	}
}

// Detector handles frontend detection from options and the host environment.
type Detector struct {
	logger *log.Logger
	env    Environment
}

// New creates a new frontend detector.
func New(logger *log.Logger, env Environment) *Detector {
	return &Detector{
		logger: logger,
		env:    env,
	}
}

// Detect determines the frontend from options or the host environment.
// An explicitly specified frontend is returned unchanged, otherwise a window
// is preferred if a display is available, followed by the terminal.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("os", d.env.OS))
	return frontend
}

func (d *Detector) detectFromEnvironment() string {
	if d.env.WindowAvailable && d.hasDisplay() {
		return options.FrontendWindow
	}
	if d.env.IsTerminal != nil && d.env.IsTerminal() {
		return options.FrontendTerminal
	}
	return options.FrontendHeadless
}

// hasDisplay returns whether a graphical session is available. Only unix
// like systems without a display server are detected as headless.
func (d *Detector) hasDisplay() bool {
	switch d.env.OS {
	case "windows", "darwin", "android", "ios", "js":
		return true
	}
	if d.env.Getenv == nil {
		return false
	}
	return d.env.Getenv("DISPLAY") != "" || d.env.Getenv("WAYLAND_DISPLAY") != ""
}
