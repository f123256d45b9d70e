// Package emulator assembles the interpreter, the runner and the frontends
// that the program options select and runs a program.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/interpreter"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/script"
	"github.com/retroenv/chip8vm/internal/statsview"
	"github.com/retroenv/retrogolib/log"
)

// Result contains the outcome of a finished run.
type Result struct {
	Stats          runner.Stats
	UnknownOpcodes int

	// set by the headless frontend only
	Digest    string
	Presented int // number of presented frames
	LitPixels int // pixels switched on in the last presented frame
}

// PrintInfo prints the information about the program that is run.
func PrintInfo(logger *log.Logger, opts options.Program, frontend string, program []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", frontend),
	)
	if opts.Seed >= 0 {
		logger.Info("Using fixed random seed", log.Int("seed", int(opts.Seed)))
	}
}

// session keeps the resources of a run that have to be released when it ends.
type session struct {
	logger        *log.Logger
	opts          options.Program
	runnerOptions []runner.Option
	closers       []func() error
	unknown       int
}

// Run executes the program with the frontend until the context is cancelled,
// the frame limit is reached or the user quits.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, frontend string, program []byte) (result Result, err error) {
	s := &session{
		logger: logger,
		opts:   opts,
	}
	defer func() {
		err = errors.Join(err, s.close())
	}()

	in := interpreter.New(logger, s.interpreterOptions()...)

	if err := s.setupSound(frontend); err != nil {
		return Result{}, err
	}
	if err := s.setupScript(); err != nil {
		return Result{}, err
	}
	if opts.Stats {
		stop := statsview.Launch(logger, statsview.DefaultAddress)
		s.addCloser(func() error {
			stop()
			return nil
		})
	}

	var r *runner.Runner
	switch frontend {
	case options.FrontendWindow:
		r, err = s.runWindow(ctx, in, program)
	case options.FrontendTerminal:
		r, err = s.runTerminal(ctx, in, program)
	default:
		var h *headless.Headless
		r, h, err = s.runHeadless(ctx, in, program)
		if h != nil {
			frame := h.Frame()
			result.Digest = h.Hash()
			result.Presented = h.Presented()
			result.LitPixels = frame.Lit()
		}
	}
	if r != nil {
		result.Stats = r.Stats()
	}
	result.UnknownOpcodes = s.unknown
	return result, err
}

func (s *session) interpreterOptions() []interpreter.Option {
	opts := []interpreter.Option{
		interpreter.WithUnknownOpcodeHandler(func(uint16, uint16) {
			s.unknown++
		}),
	}
	if s.opts.Seed >= 0 {
		opts = append(opts, interpreter.WithSeed(uint64(s.opts.Seed)))
	}
	if s.opts.Trace {
		opts = append(opts, interpreter.WithTracer(runner.TraceLogger(s.logger)))
	}
	return opts
}

// setupSound adds the live beeper for interactive frontends and the WAV recorder.
// A missing audio device only disables the live output.
func (s *session) setupSound(frontend string) error {
	if !s.opts.Mute && frontend != options.FrontendHeadless {
		beeper, err := audio.NewBeeper(audio.DefaultSampleRate)
		if err != nil {
			s.logger.Warn("Sound output disabled", log.Err(err))
		} else {
			s.runnerOptions = append(s.runnerOptions, runner.WithSound(beeper))
			s.addCloser(beeper.Close)
		}
	}

	if s.opts.Wav == "" {
		return nil
	}

	file, err := os.Create(s.opts.Wav)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", s.opts.Wav, err)
	}
	frameRate := s.opts.FrameRate
	if frameRate == 0 {
		frameRate = options.DefaultFrameRate
	}
	recorder := audio.NewRecorder(file, audio.DefaultSampleRate, frameRate)
	s.runnerOptions = append(s.runnerOptions, runner.WithSound(recorder))
	s.addCloser(file.Close)
	s.addCloser(func() error {
		if err := recorder.Close(); err != nil {
			return fmt.Errorf("finishing recording %s: %w", s.opts.Wav, err)
		}
		s.logger.Info("Sound recorded",
			log.String("file", s.opts.Wav),
			log.Int("frames", recorder.Frames()),
			log.Int("tones", recorder.Tones()))
		return nil
	})
	return nil
}

func (s *session) setupScript() error {
	if s.opts.Script == "" {
		return nil
	}

	engine := script.New(s.logger)
	s.addCloser(func() error {
		engine.Close()
		return nil
	})
	if err := engine.LoadFile(s.opts.Script); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	s.runnerOptions = append(s.runnerOptions, runner.WithHook(engine))
	return nil
}

func (s *session) newRunner(in *interpreter.Interpreter, display runner.Display, input runner.Input,
	program []byte) (*runner.Runner, error) {

	opts := append([]runner.Option{runner.WithDisplay(display), runner.WithInput(input)}, s.runnerOptions...)
	r := runner.New(s.logger, in, config.RunnerConfig(s.opts), opts...)
	if err := r.Load(program); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *session) runWindow(ctx context.Context, in *interpreter.Interpreter, program []byte) (*runner.Runner, error) {
	frameRate := s.opts.FrameRate
	if frameRate == 0 {
		frameRate = options.DefaultFrameRate
	}
	w := window.New(s.logger, window.Options{
		Title:      "chip8vm - " + filepath.Base(s.opts.Input),
		Scale:      s.opts.Scale,
		FrameRate:  frameRate,
		Fullscreen: s.opts.Fullscreen,
		StatusBar:  !s.opts.NoStatusBar,
	})

	r, err := s.newRunner(in, w, w, program)
	if err != nil {
		return nil, err
	}
	return r, w.Run(ctx, r)
}

func (s *session) runTerminal(ctx context.Context, in *interpreter.Interpreter, program []byte) (*runner.Runner, error) {
	t := terminal.New(s.logger, os.Stdin, os.Stdout)
	r, err := s.newRunner(in, t, t, program)
	if err != nil {
		return nil, err
	}

	if err := t.Open(); err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	s.addCloser(t.Close)
	return r, r.Run(ctx)
}

func (s *session) runHeadless(ctx context.Context, in *interpreter.Interpreter,
	program []byte) (*runner.Runner, *headless.Headless, error) {

	h := headless.New()
	r, err := s.newRunner(in, h, h, program)
	if err != nil {
		return nil, nil, err
	}
	return r, h, r.Run(ctx)
}

func (s *session) addCloser(fn func() error) {
	s.closers = append(s.closers, fn)
}

// close releases the resources in reverse order of their creation.
func (s *session) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
