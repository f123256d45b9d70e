// Package disasm converts CHIP-8 programs into assembly listings.
// It follows the execution flow from the program start so that sprite data
// embedded between instructions is emitted as data bytes.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options controls the generated listing.
type Options struct {
	OffsetComments bool // add the address and opcode bytes as comment to every line
	ZeroBytes      bool // output trailing zero bytes of the program
}

// Offset describes a single byte of the program.
type Offset struct {
	Data    []byte // opcode bytes for code, the data byte otherwise
	Code    string // formatted instruction, empty for data
	Label   string
	Comment string

	isCode        bool
	isOperand     bool // second byte of an instruction
	isCall        bool
	isDataPointer bool
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options
	program []byte
	offsets []Offset

	branchDestinations set.Set[uint16] // set of all addresses that are branched to

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the program that is loaded at the program start address.
func New(logger *log.Logger, program []byte, options Options) (*Disasm, error) {
	if len(program) > machine.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d",
			machine.ErrProgramTooLarge, len(program), machine.MaxProgramSize)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		program:             program,
		offsets:             make([]Offset, len(program)),
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	for i, b := range program {
		dis.offsets[i].Data = []byte{b}
	}
	if len(program) > 0 {
		dis.offsets[0].Label = "Start"
		dis.addAddressToParse(machine.ProgramStart)
	}
	return dis, nil
}

// Process disassembles the program and writes the listing.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()
	dis.addOffsetComments()

	if err := dis.write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Offsets returns the per byte disassembly result, indexed by the offset in the program.
func (dis *Disasm) Offsets() []Offset {
	return dis.offsets
}

// addressToIndex converts a memory address to a program offset.
func (dis *Disasm) addressToIndex(address uint16) (int, bool) {
	if address < machine.ProgramStart {
		return 0, false
	}
	index := int(address - machine.ProgramStart)
	return index, index < len(dis.offsets)
}

func (dis *Disasm) addOffsetComments() {
	if !dis.options.OffsetComments {
		return
	}

	for i := range dis.offsets {
		offset := &dis.offsets[i]
		if offset.isOperand {
			continue
		}
		address := machine.ProgramStart + i
		if !offset.isCode {
			offset.Comment = fmt.Sprintf("$%03X", address)
			continue
		}

		offset.Comment = fmt.Sprintf("$%03X %02X %02X", address, offset.Data[0], offset.Data[1])
	}
}
