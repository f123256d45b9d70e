// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	debug bool
	quiet bool

	noOffsets bool
}

func main() {
	options, disasmOptions := readArguments()

	if !options.quiet {
		printBanner(options)
	}

	if err := disasmFile(options, disasmOptions); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, disasm.Options) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}
	disasmOptions := disasm.Options{}

	flags.BoolVar(&options.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&options.noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.StringVar(&options.output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&disasmOptions.ZeroBytes, "z", false, "output the trailing zero bytes of the program")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: chip8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]
	disasmOptions.OffsetComments = !options.noOffsets

	return options, disasmOptions
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[---------------------------------------]")
		fmt.Println("[ chip8disasm - CHIP-8 ROM disassembler ]")
		fmt.Printf("[---------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func disasmFile(options optionFlags, disasmOptions disasm.Options) error {
	program, err := loader.New().Load(options.input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	logger := config.CreateLogger(options.debug, options.quiet)
	dis, err := disasm.New(logger, program, disasmOptions)
	if err != nil {
		return fmt.Errorf("initializing disassembler: %w", err)
	}

	var outputFile io.WriteCloser
	if options.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
	}
	if err = dis.Process(app.Context(), outputFile); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
