package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/verification"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// glyphProgram draws the glyph 0 and loops forever.
var glyphProgram = []byte{0x6A, 0x02, 0xA0, 0x50, 0xDA, 0x05, 0x12, 0x06}

func writeROM(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	fileName := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(fileName, data, 0600))
	return fileName
}

func headlessOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Frontend:       options.FrontendHeadless,
			CyclesPerFrame: options.DefaultCyclesPerFrame,
			Frames:         5,
			Seed:           -1,
		},
		Display: options.Display{Scale: options.DefaultScale},
	}
}

func TestProcessFileDisassembles(t *testing.T) {
	dir := t.TempDir()
	opts := headlessOptions(writeROM(t, dir, "glyph.ch8", glyphProgram))
	opts.Disasm = true
	opts.NoOffsets = true
	opts.Output = filepath.Join(dir, "glyph.asm")

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.FrontendHeadless)
	assert.NoError(t, err)

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	listing := string(data)
	assert.True(t, strings.Contains(listing, ".org $200"))
	assert.True(t, strings.Contains(listing, "drw VA, V0, $5"))
}

func TestProcessFileVerifiesDigest(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)
	opts := headlessOptions(writeROM(t, dir, "glyph.ch8", glyphProgram))

	opts.Verify = "0000000000000000000000000000000000000000"
	err := ProcessFile(context.Background(), logger, opts, options.FrontendHeadless)
	assert.True(t, errors.Is(err, verification.ErrDigestMismatch))

	blankOpts := headlessOptions(writeROM(t, dir, "blank.ch8", []byte{0x12, 0x00}))
	blankOpts.Verify = "0000000000000000000000000000000000000000"
	assert.NoError(t, ProcessFile(context.Background(), logger, blankOpts, options.FrontendHeadless))
}

func TestProcessFileCancelled(t *testing.T) {
	dir := t.TempDir()
	opts := headlessOptions(writeROM(t, dir, "glyph.ch8", glyphProgram))
	opts.Verify = "0000000000000000000000000000000000000000"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ProcessFile(ctx, log.NewTestLogger(t), opts, options.FrontendHeadless)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, verification.ErrDigestMismatch))
}

func TestProcessFileErrors(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)

	err := ProcessFile(context.Background(), logger, headlessOptions(filepath.Join(dir, "missing.ch8")),
		options.FrontendHeadless)
	assert.True(t, errors.Is(err, machine.ErrSourceUnavailable))

	large := writeROM(t, dir, "large.ch8", make([]byte, machine.MaxProgramSize+1))
	err = ProcessFile(context.Background(), logger, headlessOptions(large), options.FrontendHeadless)
	assert.True(t, errors.Is(err, machine.ErrProgramTooLarge))

	fault := writeROM(t, dir, "fault.ch8", []byte{0x00, 0xEE})
	err = ProcessFile(context.Background(), logger, headlessOptions(fault), options.FrontendHeadless)
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, dir, "a.ch8", glyphProgram)
	writeROM(t, dir, "b.ch8", glyphProgram)
	writeROM(t, dir, "c.txt", nil)

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = options.Program{Parameters: options.Parameters{Input: "pong.ch8"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pong.ch8"}, files)

	opts = options.Program{Parameters: options.Parameters{Batch: "["}}
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.asm", GenerateOutputFilename("roms/pong.ch8"))
	assert.Equal(t, "pong.asm", GenerateOutputFilename("pong"))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "0123456789abcdef", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "1.0.0", "", "")
}
