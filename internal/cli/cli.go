// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(strings.TrimSpace(opts.Frontend))
	if opts.Frontend == "tui" {
		opts.Frontend = options.FrontendTerminal
	}
	if opts.Batch != "" {
		opts.Frontend = options.FrontendHeadless
	}

	validFrontends := []string{"", options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}
	valid := false
	for _, frontend := range validFrontends {
		if opts.Frontend == frontend {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends[1:], ", "))
	}

	switch {
	case opts.CyclesPerFrame < 1:
		return fmt.Errorf("invalid cycles per frame %d: must be positive", opts.CyclesPerFrame)
	case opts.FrameRate < 0:
		return fmt.Errorf("invalid frame rate %d: must not be negative", opts.FrameRate)
	case opts.Scale < 1:
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	}

	if opts.Verify != "" {
		opts.Verify = strings.ToLower(opts.Verify)
		switch {
		case opts.Frames == 0:
			return &UsageError{msg: "verifying a screen digest requires a frame limit, pass -frames"}
		case opts.Frontend == "":
			opts.Frontend = options.FrontendHeadless
		case opts.Frontend != options.FrontendHeadless:
			return &UsageError{msg: "verifying a screen digest requires the headless frontend"}
		}
	}
	if opts.Batch != "" && opts.Frames == 0 {
		return &UsageError{msg: "batch runs require a frame limit, pass -frames"}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file for -disasm, printed on console if no name given")
	flags.StringVar(&opts.Script, "script", "", "Lua script to load, its on_frame function is called every frame")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound output to the given .wav file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask headless, for example *.ch8")
	flags.StringVar(&opts.Verify, "verify", "", "expected screen digest after the frame limit of a headless run")
	flags.StringVar(&opts.Frontend, "f", "", "frontend to use (window/terminal/headless), auto-detected if not given")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", options.DefaultCyclesPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.FrameRate, "fps", options.DefaultFrameRate, "frames per second, 0 runs headless frontends unthrottled")
	flags.Uint64Var(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until closed")
	flags.Int64Var(&opts.Seed, "seed", -1, "seed of the random number generator, -1 for a random seed")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "scale factor of the window")
	flags.BoolVar(&opts.Fullscreen, "fullscreen", false, "start the window in fullscreen mode")
	flags.BoolVar(&opts.NoStatusBar, "nostatus", false, "hide the status bar of the window")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Stats, "stats", false, "start the runtime statistics web server")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print the disassembly of the ROM instead of running it")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments of the disassembly")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the disassembly")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
