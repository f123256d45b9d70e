package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// formatParams returns the formatted parameter string of the instruction.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return "" // no parameters
	case chip8.JpInst.Name:
		return formatJump(opcode)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		return formatCompare(opcode)
	case chip8.LdInst.Name:
		return formatLoad(opcode)
	case chip8.AddInst.Name:
		return formatAdd(opcode)
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.ShrInst.Name, chip8.ShlInst.Name, chip8.SkpInst.Name, chip8.SknpInst.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

func formatJump(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

// formatCompare formats SE and SNE, which compare with a byte (3XNN, 4XNN)
// or with a register (5XY0, 9XY0).
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// loadForms maps the lowest byte of FXNN load instructions to the parameter format.
var loadForms = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

func formatLoad(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		if form, ok := loadForms[opcode&0x00FF]; ok {
			return fmt.Sprintf(form, x)
		}
	}
	return ""
}

func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
