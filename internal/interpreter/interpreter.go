// Package interpreter implements the fetch-decode-execute cycle of the CHIP-8 virtual machine.
package interpreter

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// instructionSize is the size of every instruction in bytes.
const instructionSize = 2

// TraceFunc is called for every fetched instruction before it is executed.
type TraceFunc func(address uint16, ins Instruction)

// UnknownOpcodeFunc is called for every fetched word that does not encode an operation.
type UnknownOpcodeFunc func(address, word uint16)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSeed makes the random number instruction deterministic.
func WithSeed(seed uint64) Option {
	return func(in *Interpreter) {
		in.rnd = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// WithTracer sets a function that observes every executed instruction.
func WithTracer(fn TraceFunc) Option {
	return func(in *Interpreter) {
		in.tracer = fn
	}
}

// WithUnknownOpcodeHandler sets a function that is notified about unknown opcodes
// in addition to the logged warning.
func WithUnknownOpcodeHandler(fn UnknownOpcodeFunc) Option {
	return func(in *Interpreter) {
		in.onUnknown = fn
	}
}

// Interpreter executes instructions on a machine state that it exclusively owns.
type Interpreter struct {
	logger    *log.Logger
	state     *machine.State
	rnd       *rand.Rand
	tracer    TraceFunc
	onUnknown UnknownOpcodeFunc

	cycles uint64
}

// New returns a new interpreter with an initialized machine.
func New(logger *log.Logger, options ...Option) *Interpreter {
	in := &Interpreter{
		logger: logger,
		state:  machine.New(),
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range options {
		opt(in)
	}
	return in
}

// Initialize resets the machine to its power-on state.
func (in *Interpreter) Initialize() {
	in.state.Initialize()
	in.cycles = 0
}

// LoadProgram copies the program into memory at the program start address.
func (in *Interpreter) LoadProgram(program []byte) error {
	if err := in.state.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	in.logger.Debug("Program loaded",
		log.Hex("address", uint16(machine.ProgramStart)),
		log.Int("size", len(program)))
	return nil
}

// LoadFrom reads a program of the given size from the reader and loads it.
func (in *Interpreter) LoadFrom(r io.Reader, size int) error {
	if err := in.state.LoadFrom(r, size); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	in.logger.Debug("Program loaded",
		log.Hex("address", uint16(machine.ProgramStart)),
		log.Int("size", size))
	return nil
}

// Step executes exactly one instruction.
// Unknown opcodes are reported but do not fail, the program counter has
// already moved past them. A stack fault returns an error and leaves the
// program counter pointing at the faulting instruction.
func (in *Interpreter) Step() (Instruction, error) {
	s := in.state
	address := s.PC
	word := uint16(s.Read(address))<<8 | uint16(s.Read(address+1))
	s.PC = (address + instructionSize) & machine.AddressMask

	ins := Decode(word)
	if in.tracer != nil {
		in.tracer(address, ins)
	}

	if err := handlers[ins.Op](in, ins); err != nil {
		s.PC = address
		return ins, fmt.Errorf("executing %s at address $%03X: %w", ins, address, err)
	}
	in.cycles++
	return ins, nil
}

// TickTimers decrements the delay and sound timers once, it is called once per frame.
// It returns true when the sound timer just expired.
func (in *Interpreter) TickTimers() bool {
	return in.state.TickTimers()
}

// SoundActive returns whether the sound timer is running.
func (in *Interpreter) SoundActive() bool {
	return in.state.SoundTimer > 0
}

// Snapshot returns a copy of the frame buffer and whether it changed since
// the last snapshot. It clears the redraw flag.
func (in *Interpreter) Snapshot() (machine.FrameBuffer, bool) {
	return in.state.Snapshot()
}

// SetKeypad latches the state of the keypad for the following instructions.
func (in *Interpreter) SetKeypad(keys machine.Keypad) {
	in.state.Keypad = keys
}

// Inspect returns a copy of the complete machine state.
func (in *Interpreter) Inspect() machine.State {
	return *in.state
}

// Cycles returns the number of executed instructions since initialization.
func (in *Interpreter) Cycles() uint64 {
	return in.cycles
}
