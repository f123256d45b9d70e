package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x6A, 0x02, 0xA0, 0x50, 0xDA, 0x05}
		tmpFile := createTempFile(t, data)

		program, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, data, program)
	})

	t.Run("largest program", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxProgramSize))

		program, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, program, machine.MaxProgramSize)
	})

	t.Run("error on program too large", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxProgramSize+1))

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, machine.ErrProgramTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, machine.ErrSourceUnavailable))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.True(t, errors.Is(err, machine.ErrSourceUnavailable))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadFromInvalidSource(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		size int64
	}{
		{name: "short reader", data: []byte{0x00, 0xE0}, size: 4},
		{name: "negative size", data: []byte{0x00, 0xE0}, size: -1},
		{name: "zero size", data: nil, size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().LoadFrom(bytes.NewReader(tt.data), tt.size)
			assert.True(t, errors.Is(err, machine.ErrSourceUnavailable))
		})
	}
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
