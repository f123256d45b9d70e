// Package runner drives the interpreter in frames and connects it to the
// display, input and sound frontends.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/interpreter"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// ErrStopped is returned by Frame after the runner finished.
var ErrStopped = errors.New("runner stopped")

// Display presents a copy of the frame buffer, it is only called when the
// frame buffer changed.
type Display interface {
	Present(frame machine.FrameBuffer) error
}

// Input returns the current keypad state and whether the user requested to quit.
type Input interface {
	Keypad() (machine.Keypad, bool)
}

// Sound is updated once per frame with whether the sound timer is running
// and whether it expired during this frame.
type Sound interface {
	Update(active, expired bool)
}

// Hook observes every frame. The returned keys are merged with the input
// keypad, returning quit stops the runner.
type Hook interface {
	OnFrame(frame uint64, state machine.State) (keys machine.Keypad, quit bool, err error)
}

// Config contains the timing parameters of the runner.
type Config struct {
	CyclesPerFrame int
	FrameRate      int    // frames per second, 0 runs unthrottled
	MaxFrames      uint64 // 0 runs until stopped
}

// Stats contains the runtime counters of the runner.
type Stats struct {
	Frames uint64
	Cycles uint64
	Paused bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithDisplay sets the display that frames are presented to.
func WithDisplay(display Display) Option {
	return func(r *Runner) {
		r.display = display
	}
}

// WithInput sets the keypad source.
func WithInput(input Input) Option {
	return func(r *Runner) {
		r.input = input
	}
}

// WithSound adds a sound sink, multiple sinks can be set.
func WithSound(sound Sound) Option {
	return func(r *Runner) {
		r.sounds = append(r.sounds, sound)
	}
}

// WithHook adds a frame hook.
func WithHook(hook Hook) Option {
	return func(r *Runner) {
		r.hooks = append(r.hooks, hook)
	}
}

// Runner executes the interpreter frame by frame.
type Runner struct {
	logger *log.Logger
	in     *interpreter.Interpreter
	config Config

	display Display
	input   Input
	sounds  []Sound
	hooks   []Hook

	program []byte
	frames  uint64
	paused  bool
	stopped bool
}

// New returns a new runner for the interpreter.
func New(logger *log.Logger, in *interpreter.Interpreter, config Config, options ...Option) *Runner {
	r := &Runner{
		logger: logger,
		in:     in,
		config: config,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Load loads the program into the interpreter and keeps it for resets.
func (r *Runner) Load(program []byte) error {
	if err := r.in.LoadProgram(program); err != nil {
		return err
	}
	r.program = program
	return nil
}

// Reset reinitializes the machine and reloads the program.
func (r *Runner) Reset() error {
	r.in.Initialize()
	if err := r.in.LoadProgram(r.program); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}
	r.logger.Info("Machine reset")
	return nil
}

// TogglePause pauses or resumes the execution, input is still sampled while paused.
func (r *Runner) TogglePause() {
	r.paused = !r.paused
	if r.paused {
		r.logger.Info("Paused")
	} else {
		r.logger.Info("Resumed")
	}
}

// Stop finishes the runner after the current frame.
func (r *Runner) Stop() {
	r.stopped = true
}

// Stats returns the runtime counters.
func (r *Runner) Stats() Stats {
	return Stats{
		Frames: r.frames,
		Cycles: r.in.Cycles(),
		Paused: r.paused,
	}
}

// Frame executes one frame: the configured number of instructions, one timer
// tick, presenting a changed frame buffer and sampling the keypad.
func (r *Runner) Frame() error {
	if r.stopped {
		return ErrStopped
	}

	if !r.paused {
		if err := r.execute(); err != nil {
			r.stopped = true
			return err
		}
	}

	frame, redraw := r.in.Snapshot()
	if redraw && r.display != nil {
		if err := r.display.Present(frame); err != nil {
			r.stopped = true
			return fmt.Errorf("presenting frame: %w", err)
		}
	}

	if err := r.sampleInput(); err != nil {
		r.stopped = true
		return err
	}

	if !r.paused {
		r.frames++
	}
	if r.config.MaxFrames > 0 && r.frames >= r.config.MaxFrames {
		r.stopped = true
	}
	return nil
}

func (r *Runner) execute() error {
	for range r.config.CyclesPerFrame {
		if _, err := r.in.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", r.frames, err)
		}
	}

	expired := r.in.TickTimers()
	active := r.in.SoundActive()
	for _, sound := range r.sounds {
		sound.Update(active, expired)
	}
	return nil
}

// sampleInput latches the keypad state of the input and all hooks for the next frame.
func (r *Runner) sampleInput() error {
	var keys machine.Keypad
	if r.input != nil {
		var quit bool
		keys, quit = r.input.Keypad()
		if quit {
			r.logger.Debug("Quit requested by input")
			r.stopped = true
		}
	}

	if len(r.hooks) > 0 {
		state := r.in.Inspect()
		for _, hook := range r.hooks {
			hookKeys, quit, err := hook.OnFrame(r.frames, state)
			if err != nil {
				return fmt.Errorf("running frame hook: %w", err)
			}
			if quit {
				r.logger.Debug("Quit requested by frame hook")
				r.stopped = true
			}
			keys = keys.Merge(hookKeys)
		}
	}

	r.in.SetKeypad(keys)
	return nil
}

// Run executes frames at the configured frame rate until the context is
// cancelled, the frame limit is reached or a quit is requested.
func (r *Runner) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.config.FrameRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.config.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := r.Frame(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}

		if tick == nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}
	}
}
