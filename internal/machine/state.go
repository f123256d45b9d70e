package machine

import (
	"errors"
	"fmt"
	"io"
)

// Memory layout constants.
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096
	// AddressMask reduces any address to the address space.
	AddressMask = MemorySize - 1
	// ProgramStart is the memory address where programs are loaded and start execution.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of V registers.
	RegisterCount = 16
	// FlagRegister is the index of VF.
	FlagRegister = 0xF
	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16
)

var (
	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrSourceUnavailable is returned when the program source can not be read in full.
	ErrSourceUnavailable = errors.New("program source unavailable")
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// State is the complete mutable state of a CHIP-8 machine.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16

	Stack [StackSize]uint16
	SP    uint8

	DelayTimer uint8
	SoundTimer uint8

	Keypad Keypad
	Frame  FrameBuffer

	// Redraw is set by instructions that change the frame buffer and
	// cleared by the presentation step after it consumed the frame.
	Redraw bool
}

// New returns a new initialized machine state.
func New() *State {
	s := &State{}
	s.Initialize()
	return s
}

// Initialize resets every field, sets the program counter to the program start
// and installs the font glyphs.
func (s *State) Initialize() {
	*s = State{}
	s.PC = ProgramStart
	copy(s.Memory[FontStart:], font[:])
}

// LoadProgram copies the program into memory at ProgramStart.
// The memory is not modified if the program does not fit.
func (s *State) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(s.Memory[ProgramStart:], program)
	return nil
}

// LoadFrom reads a program of the given size from the reader and loads it.
// The memory is not modified if the size exceeds the available memory or
// the reader can not deliver size bytes.
func (s *State) LoadFrom(r io.Reader, size int) error {
	if size > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, size, MaxProgramSize)
	}
	if size < 0 {
		return fmt.Errorf("%w: invalid size %d", ErrSourceUnavailable, size)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return s.LoadProgram(buf)
}

// Read returns the byte at the given address, the address wraps at the end of memory.
func (s *State) Read(address uint16) byte {
	return s.Memory[address&AddressMask]
}

// Write sets the byte at the given address, the address wraps at the end of memory.
func (s *State) Write(address uint16, value byte) {
	s.Memory[address&AddressMask] = value
}

// Push stores a return address on the stack.
func (s *State) Push(address uint16) error {
	if int(s.SP) >= StackSize {
		return ErrStackOverflow
	}
	s.Stack[s.SP] = address
	s.SP++
	return nil
}

// Pop removes the last return address from the stack.
func (s *State) Pop() (uint16, error) {
	if s.SP == 0 {
		return 0, ErrStackUnderflow
	}
	s.SP--
	return s.Stack[s.SP], nil
}

// TickTimers decrements both timers by one if they are not zero already.
// It returns true when the sound timer just expired, which is the signal
// to emit a tone.
func (s *State) TickTimers() bool {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}

	if s.SoundTimer == 0 {
		return false
	}
	s.SoundTimer--
	return s.SoundTimer == 0
}

// Snapshot returns a copy of the frame buffer and clears the redraw flag.
// The second return value reports whether the frame changed since the last snapshot.
func (s *State) Snapshot() (FrameBuffer, bool) {
	redraw := s.Redraw
	s.Redraw = false
	return s.Frame, redraw
}
