// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow: the ROM is
// either disassembled or run with the frontend.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, frontend string) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		return disassemble(ctx, logger, opts, program)
	}

	emulator.PrintInfo(logger, opts, frontend, program)
	result, err := emulator.Run(ctx, logger, opts, frontend, program)
	if err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}
	// cancelled runs are neither reported nor verified
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}

	logger.Info("Run finished",
		log.String("file", opts.Input),
		log.Int("frames", int(result.Stats.Frames)),
		log.Int("cycles", int(result.Stats.Cycles)))
	if result.UnknownOpcodes > 0 {
		logger.Warn("Program executed unknown opcodes", log.Int("count", result.UnknownOpcodes))
	}
	if result.Digest != "" {
		logger.Info("Screen digest",
			log.String("sha1", result.Digest),
			log.Int("presented", result.Presented),
			log.Int("lit", result.LitPixels))
	}

	if opts.Verify != "" {
		if err := verification.VerifyDigest(logger, opts.Verify, result.Digest); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func disassemble(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) error {
	dis, err := disasm.New(logger, program, disasm.Options{
		OffsetComments: !opts.NoOffsets,
		ZeroBytes:      opts.ZeroBytes,
	})
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := dis.Process(ctx, writer); err != nil {
		_ = writer.Close()
		return fmt.Errorf("disassembling: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8vm", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc nopCloser) Close() error {
	return nil
}
