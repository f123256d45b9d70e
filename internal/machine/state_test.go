package machine

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/retroenv/retrogolib/assert"
)

// fontGolden is the glyph table every implementation must install at FontStart.
var fontGolden = []byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, 0x20, 0x60, 0x20, 0x20, 0x70,
	0xF0, 0x10, 0xF0, 0x80, 0xF0, 0xF0, 0x10, 0xF0, 0x10, 0xF0,
	0x90, 0x90, 0xF0, 0x10, 0x10, 0xF0, 0x80, 0xF0, 0x10, 0xF0,
	0xF0, 0x80, 0xF0, 0x90, 0xF0, 0xF0, 0x10, 0x20, 0x40, 0x40,
	0xF0, 0x90, 0xF0, 0x90, 0xF0, 0xF0, 0x90, 0xF0, 0x10, 0xF0,
	0xF0, 0x90, 0xF0, 0x90, 0x90, 0xE0, 0x90, 0xE0, 0x90, 0xE0,
	0xF0, 0x80, 0x80, 0x80, 0xF0, 0xE0, 0x90, 0x90, 0x90, 0xE0,
	0xF0, 0x80, 0xF0, 0x80, 0xF0, 0xF0, 0x80, 0xF0, 0x80, 0x80,
}

func TestInitialize(t *testing.T) {
	s := New()

	assert.Equal(t, uint16(ProgramStart), s.PC)
	assert.Equal(t, fontGolden, s.Memory[FontStart:FontStart+FontSize])
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, uint16(0), s.I)

	for i := range FontStart {
		assert.Equal(t, byte(0), s.Memory[i])
	}
	for i := FontStart + FontSize; i < MemorySize; i++ {
		assert.Equal(t, byte(0), s.Memory[i])
	}
}

func TestInitializeResets(t *testing.T) {
	s := New()
	s.V[3] = 7
	s.I = 0x123
	s.PC = 0x456
	s.DelayTimer = 9
	s.Keypad[4] = true
	s.Frame.Toggle(1, 1)
	s.Redraw = true
	assert.NoError(t, s.Push(0x300))
	assert.NoError(t, s.LoadProgram([]byte{1, 2, 3}))

	s.Initialize()

	assert.Equal(t, *New(), *s)
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty program", 0, false},
		{"small program", 6, false},
		{"maximum size", MaxProgramSize, false},
		{"one byte too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = byte(i*7 + 1)
			}

			err := s.LoadProgram(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				assert.Equal(t, *New(), *s)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, program, s.Memory[ProgramStart:ProgramStart+tt.size])
		})
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("full read", func(t *testing.T) {
		s := New()
		data := []byte{0x6A, 0x02, 0xA0, 0x50}
		assert.NoError(t, s.LoadFrom(bytes.NewReader(data), len(data)))
		assert.Equal(t, data, s.Memory[ProgramStart:ProgramStart+len(data)])
	})

	t.Run("short read", func(t *testing.T) {
		s := New()
		err := s.LoadFrom(bytes.NewReader([]byte{1, 2}), 4)
		assert.True(t, errors.Is(err, ErrSourceUnavailable))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Equal(t, *New(), *s)
	})

	t.Run("read error", func(t *testing.T) {
		s := New()
		err := s.LoadFrom(iotest.ErrReader(io.ErrClosedPipe), 4)
		assert.True(t, errors.Is(err, ErrSourceUnavailable))
		assert.Equal(t, *New(), *s)
	})

	t.Run("too large is checked before reading", func(t *testing.T) {
		s := New()
		err := s.LoadFrom(iotest.ErrReader(io.ErrClosedPipe), MaxProgramSize+1)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
	})
}

func TestReadWriteWrap(t *testing.T) {
	s := New()
	s.Write(MemorySize+0x10, 0xAB)
	assert.Equal(t, byte(0xAB), s.Memory[0x10])
	assert.Equal(t, byte(0xAB), s.Read(0x10))
	assert.Equal(t, byte(0xAB), s.Read(2*MemorySize+0x10))
}

func TestStack(t *testing.T) {
	s := New()

	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := range StackSize {
		assert.NoError(t, s.Push(uint16(0x200+2*i)))
	}
	assert.True(t, errors.Is(s.Push(0x300), ErrStackOverflow))
	assert.Equal(t, uint8(StackSize), s.SP)

	for i := StackSize - 1; i >= 0; i-- {
		address, err := s.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+2*i), address)
	}
	assert.Equal(t, uint8(0), s.SP)
}

func TestTickTimers(t *testing.T) {
	t.Run("delay timer floors at zero", func(t *testing.T) {
		s := New()
		s.DelayTimer = 5
		for range 5 {
			s.TickTimers()
		}
		assert.Equal(t, uint8(0), s.DelayTimer)
		s.TickTimers()
		assert.Equal(t, uint8(0), s.DelayTimer)
	})

	t.Run("tone signal on sound timer expiry", func(t *testing.T) {
		s := New()
		s.SoundTimer = 2
		assert.False(t, s.TickTimers())
		assert.True(t, s.TickTimers())
		assert.False(t, s.TickTimers())
		assert.Equal(t, uint8(0), s.SoundTimer)
	})

	t.Run("timers are independent", func(t *testing.T) {
		s := New()
		s.DelayTimer = 1
		s.SoundTimer = 3
		s.TickTimers()
		assert.Equal(t, uint8(0), s.DelayTimer)
		assert.Equal(t, uint8(2), s.SoundTimer)
	})
}

func TestSnapshot(t *testing.T) {
	s := New()
	s.Frame.Toggle(3, 4)
	s.Redraw = true

	frame, redraw := s.Snapshot()
	assert.True(t, redraw)
	assert.False(t, s.Redraw)
	assert.True(t, frame.Pixel(3, 4))

	s.Frame.Toggle(3, 4)
	assert.True(t, frame.Pixel(3, 4))

	_, redraw = s.Snapshot()
	assert.False(t, redraw)
}
