// Package main implements the main entry point of the CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if len(files) == 0 {
		logger.Fatal("No files found matching the batch pattern", log.String("pattern", opts.Batch))
	}

	frontend := detector.New(logger, detector.HostEnvironment()).Detect(opts)

	failed := false
	for _, file := range files {
		if ctx.Err() != nil {
			logger.Info("Operation cancelled")
			return
		}
		opts.Input = file
		if opts.Disasm && len(files) > 1 {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, frontend); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Processing failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
