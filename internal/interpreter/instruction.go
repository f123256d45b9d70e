package interpreter

import "fmt"

// Instruction is a decoded instruction word.
type Instruction struct {
	Op   Op
	Word uint16

	Address uint16 // NNN: lowest 12 bits
	Byte    byte   // NN: lowest 8 bits
	Nibble  byte   // N: lowest 4 bits
	X       byte   // second nibble, register index
	Y       byte   // third nibble, register index
}

// String returns the instruction word and operation, for example "6A02 LD Vx, byte".
func (i Instruction) String() string {
	return fmt.Sprintf("%04X %s", i.Word, i.Op)
}

// decoder maps an instruction word of a primary opcode group to an operation.
type decoder func(word uint16) Op

// primaryDecoders is indexed by the highest nibble of the instruction word.
var primaryDecoders = [16]decoder{
	0x0: decodeSystem,
	0x1: always(OpJp),
	0x2: always(OpCall),
	0x3: always(OpSeByte),
	0x4: always(OpSneByte),
	0x5: always(OpSeReg),
	0x6: always(OpLdByte),
	0x7: always(OpAddByte),
	0x8: secondary(aluOps, lowNibble),
	0x9: always(OpSneReg),
	0xA: always(OpLdI),
	0xB: always(OpJpV0),
	0xC: always(OpRnd),
	0xD: always(OpDrw),
	0xE: secondary(keyOps, lowByte),
	0xF: secondary(miscOps, lowByte),
}

// aluOps is keyed by the lowest nibble of 8XYN words.
var aluOps = map[byte]Op{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

// keyOps is keyed by the lowest byte of EXNN words.
var keyOps = map[byte]Op{
	0x9E: OpSkp,
	0xA1: OpSknp,
}

// miscOps is keyed by the lowest byte of FXNN words.
var miscOps = map[byte]Op{
	0x07: OpLdVxDT,
	0x0A: OpLdVxK,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddI,
	0x29: OpLdF,
	0x33: OpLdB,
	0x55: OpStore,
	0x65: OpLoad,
}

// Decode splits the instruction word into its fields and identifies the operation.
// Words that do not encode an operation are returned with OpUnknown.
func Decode(word uint16) Instruction {
	return Instruction{
		Op:      primaryDecoders[word>>12](word),
		Word:    word,
		Address: word & 0x0FFF,
		Byte:    byte(word),
		Nibble:  byte(word & 0x000F),
		X:       byte(word>>8) & 0x0F,
		Y:       byte(word>>4) & 0x0F,
	}
}

// decodeSystem selects by the lowest byte, the address nibble of 0NNN is ignored.
func decodeSystem(word uint16) Op {
	switch lowByte(word) {
	case 0xE0:
		return OpCls
	case 0xEE:
		return OpRet
	default:
		return OpSys
	}
}

func always(op Op) decoder {
	return func(uint16) Op {
		return op
	}
}

func secondary(ops map[byte]Op, key func(uint16) byte) decoder {
	return func(word uint16) Op {
		return ops[key(word)] // missing keys return OpUnknown
	}
}

func lowNibble(word uint16) byte {
	return byte(word & 0x000F)
}

func lowByte(word uint16) byte {
	return byte(word)
}
