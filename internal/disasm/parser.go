package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// followExecutionFlow parses all addresses that are reachable from the program start.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processAddress(address)
	}
	return nil
}

func (dis *Disasm) processAddress(address uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return
	}
	offset := &dis.offsets[index]
	if offset.isCode || offset.isOperand {
		return
	}
	if index+1 >= len(dis.offsets) || dis.offsets[index+1].isCode {
		return // no room for a complete instruction, keep as data
	}

	word := uint16(dis.program[index])<<8 | uint16(dis.program[index+1])
	opcode, ok := Lookup(word)
	if !ok {
		dis.logger.Debug("Unknown opcode treated as data",
			log.Hex("address", address),
			log.Hex("opcode", word))
		return
	}

	offset.isCode = true
	offset.Data = dis.program[index : index+opcodeSize]
	offset.Code = Format(word)
	dis.offsets[index+1].isOperand = true

	dis.handleControlFlow(address, word, opcode.Instruction)
}

// handleControlFlow queues the addresses that can be executed after the instruction.
func (dis *Disasm) handleControlFlow(address, word uint16, ins *chip8.Instruction) {
	next := address + opcodeSize
	target := word & 0x0FFF

	switch {
	case ins == chip8.JpInst && word&0xF000 == 0xB000:
		// target depends on V0 at runtime

	case ins == chip8.JpInst:
		dis.addBranchDestination(target, false)

	case ins == chip8.CallInst:
		dis.addBranchDestination(target, true)
		dis.addAddressToParse(next)

	case ins == chip8.RetInst:

	case chip8.SkipInstructions.Contains(ins.Name):
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + opcodeSize)

	case ins == chip8.LdInst && word&0xF000 == 0xA000:
		dis.addDataReference(target)
		dis.addAddressToParse(next)

	default:
		dis.addAddressToParse(next)
	}
}

func (dis *Disasm) addBranchDestination(address uint16, isCall bool) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return // outside of the program, for example the interpreter area
	}
	if isCall {
		dis.offsets[index].isCall = true
	}
	dis.branchDestinations.Add(address)
	dis.addAddressToParse(address)
}

func (dis *Disasm) addDataReference(address uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return
	}
	dis.offsets[index].isDataPointer = true
	dis.branchDestinations.Add(address)
}

func (dis *Disasm) addAddressToParse(address uint16) {
	if _, ok := dis.addressToIndex(address); !ok {
		return
	}
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// Lookup returns the opcode definition that matches the instruction word.
func Lookup(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Format returns the assembly representation of the instruction word,
// unknown words are formatted as a data word.
func Format(word uint16) string {
	opcode, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := opcode.Instruction.Name
	if params := formatParams(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}
