package interpreter

// Op identifies one of the 35 operations of the instruction set.
type Op uint8

// The zero value OpUnknown marks a word that does not encode any operation.
const (
	OpUnknown  Op = iota
	OpSys         // 0NNN
	OpCls         // 00E0
	OpRet         // 00EE
	OpJp          // 1NNN
	OpCall        // 2NNN
	OpSeByte      // 3XNN
	OpSneByte     // 4XNN
	OpSeReg       // 5XY0
	OpLdByte      // 6XNN
	OpAddByte     // 7XNN
	OpLdReg       // 8XY0
	OpOr          // 8XY1
	OpAnd         // 8XY2
	OpXor         // 8XY3
	OpAddReg      // 8XY4
	OpSub         // 8XY5
	OpShr         // 8XY6
	OpSubn        // 8XY7
	OpShl         // 8XYE
	OpSneReg      // 9XY0
	OpLdI         // ANNN
	OpJpV0        // BNNN
	OpRnd         // CXNN
	OpDrw         // DXYN
	OpSkp         // EX9E
	OpSknp        // EXA1
	OpLdVxDT      // FX07
	OpLdVxK       // FX0A
	OpLdDTVx      // FX15
	OpLdSTVx      // FX18
	OpAddI        // FX1E
	OpLdF         // FX29
	OpLdB         // FX33
	OpStore       // FX55
	OpLoad        // FX65

	opCount
)

var opNames = [opCount]string{
	OpUnknown: "UNKNOWN",
	OpSys:     "SYS addr",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP addr",
	OpCall:    "CALL addr",
	OpSeByte:  "SE Vx, byte",
	OpSneByte: "SNE Vx, byte",
	OpSeReg:   "SE Vx, Vy",
	OpLdByte:  "LD Vx, byte",
	OpAddByte: "ADD Vx, byte",
	OpLdReg:   "LD Vx, Vy",
	OpOr:      "OR Vx, Vy",
	OpAnd:     "AND Vx, Vy",
	OpXor:     "XOR Vx, Vy",
	OpAddReg:  "ADD Vx, Vy",
	OpSub:     "SUB Vx, Vy",
	OpShr:     "SHR Vx",
	OpSubn:    "SUBN Vx, Vy",
	OpShl:     "SHL Vx",
	OpSneReg:  "SNE Vx, Vy",
	OpLdI:     "LD I, addr",
	OpJpV0:    "JP V0, addr",
	OpRnd:     "RND Vx, byte",
	OpDrw:     "DRW Vx, Vy, nibble",
	OpSkp:     "SKP Vx",
	OpSknp:    "SKNP Vx",
	OpLdVxDT:  "LD Vx, DT",
	OpLdVxK:   "LD Vx, K",
	OpLdDTVx:  "LD DT, Vx",
	OpLdSTVx:  "LD ST, Vx",
	OpAddI:    "ADD I, Vx",
	OpLdF:     "LD F, Vx",
	OpLdB:     "LD B, Vx",
	OpStore:   "LD [I], Vx",
	OpLoad:    "LD Vx, [I]",
}

// String returns the assembler notation of the operation.
func (o Op) String() string {
	if o >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// Ops returns all defined operations, excluding OpUnknown.
func Ops() []Op {
	ops := make([]Op, 0, opCount-1)
	for op := OpUnknown + 1; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}
