// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/machine"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 program from the file. The file size is checked
// before reading, files that do not fit into memory are rejected with
// machine.ErrProgramTooLarge.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w: %w", fileName, machine.ErrSourceUnavailable, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w: %w", fileName, machine.ErrSourceUnavailable, err)
	}

	return l.LoadFrom(file, info.Size())
}

// LoadFrom reads a program of the given size from the reader.
func (l *Loader) LoadFrom(r io.Reader, size int64) ([]byte, error) {
	if size > machine.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", machine.ErrProgramTooLarge, size, machine.MaxProgramSize)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", machine.ErrSourceUnavailable, size)
	}

	program := make([]byte, size)
	if _, err := io.ReadFull(r, program); err != nil {
		return nil, fmt.Errorf("%w: %w", machine.ErrSourceUnavailable, err)
	}
	return program, nil
}
