package interpreter

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x0123, OpSys},
		{0x0000, OpSys},
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x02E0, OpCls},
		{0x01EE, OpRet},
		{0x01E1, OpSys},
		{0x1ABC, OpJp},
		{0x2ABC, OpCall},
		{0x3A12, OpSeByte},
		{0x4A12, OpSneByte},
		{0x5AB0, OpSeReg},
		{0x5AB1, OpSeReg},
		{0x6A12, OpLdByte},
		{0x7A12, OpAddByte},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8AB8, OpUnknown},
		{0x8ABE, OpShl},
		{0x9AB0, OpSneReg},
		{0x9AB5, OpSneReg},
		{0xA123, OpLdI},
		{0xB123, OpJpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xEA00, OpUnknown},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdVxK},
		{0xFA15, OpLdDTVx},
		{0xFA18, OpLdSTVx},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpStore},
		{0xFA65, OpLoad},
		{0xFAFF, OpUnknown},
	}

	for _, tt := range tests {
		t.Run(Decode(tt.word).String(), func(t *testing.T) {
			assert.Equal(t, tt.op, Decode(tt.word).Op)
		})
	}
}

func TestDecodeFields(t *testing.T) {
	ins := Decode(0xD7A5)

	assert.Equal(t, OpDrw, ins.Op)
	assert.Equal(t, uint16(0xD7A5), ins.Word)
	assert.Equal(t, uint16(0x7A5), ins.Address)
	assert.Equal(t, byte(0xA5), ins.Byte)
	assert.Equal(t, byte(0x5), ins.Nibble)
	assert.Equal(t, byte(0x7), ins.X)
	assert.Equal(t, byte(0xA), ins.Y)
	assert.Equal(t, "D7A5 DRW Vx, Vy, nibble", ins.String())
}

func TestEveryOpIsDecodableAndHandled(t *testing.T) {
	decoded := map[Op]bool{}
	for word := range 0x10000 {
		decoded[Decode(uint16(word)).Op] = true
	}

	ops := Ops()
	assert.Len(t, ops, 35)
	for _, op := range ops {
		assert.True(t, decoded[op], "operation %s is never decoded", op)
		assert.NotNil(t, handlers[op], "operation %s has no handler", op)
		assert.True(t, op.String() != opNames[OpUnknown])
	}
	assert.NotNil(t, handlers[OpUnknown])
}

func TestOpStringOutOfRange(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Op(200).String())
}
