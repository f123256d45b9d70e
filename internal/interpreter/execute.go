package interpreter

import (
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction, the program counter already points
// to the next instruction.
type handler func(in *Interpreter, ins Instruction) error

// handlers is indexed by Op and has an entry for every operation.
var handlers = [opCount]handler{
	OpUnknown: (*Interpreter).unknown,
	OpSys:     (*Interpreter).sys,
	OpCls:     (*Interpreter).cls,
	OpRet:     (*Interpreter).ret,
	OpJp:      (*Interpreter).jp,
	OpCall:    (*Interpreter).call,
	OpSeByte:  (*Interpreter).seByte,
	OpSneByte: (*Interpreter).sneByte,
	OpSeReg:   (*Interpreter).seReg,
	OpLdByte:  (*Interpreter).ldByte,
	OpAddByte: (*Interpreter).addByte,
	OpLdReg:   (*Interpreter).ldReg,
	OpOr:      (*Interpreter).or,
	OpAnd:     (*Interpreter).and,
	OpXor:     (*Interpreter).xor,
	OpAddReg:  (*Interpreter).addReg,
	OpSub:     (*Interpreter).sub,
	OpShr:     (*Interpreter).shr,
	OpSubn:    (*Interpreter).subn,
	OpShl:     (*Interpreter).shl,
	OpSneReg:  (*Interpreter).sneReg,
	OpLdI:     (*Interpreter).ldI,
	OpJpV0:    (*Interpreter).jpV0,
	OpRnd:     (*Interpreter).random,
	OpDrw:     (*Interpreter).drw,
	OpSkp:     (*Interpreter).skp,
	OpSknp:    (*Interpreter).sknp,
	OpLdVxDT:  (*Interpreter).ldVxDT,
	OpLdVxK:   (*Interpreter).ldVxK,
	OpLdDTVx:  (*Interpreter).ldDTVx,
	OpLdSTVx:  (*Interpreter).ldSTVx,
	OpAddI:    (*Interpreter).addI,
	OpLdF:     (*Interpreter).ldF,
	OpLdB:     (*Interpreter).ldB,
	OpStore:   (*Interpreter).store,
	OpLoad:    (*Interpreter).load,
}

func (in *Interpreter) skipIf(condition bool) {
	if condition {
		in.state.PC = (in.state.PC + instructionSize) & machine.AddressMask
	}
}

func (in *Interpreter) setFlag(set bool) {
	var flag byte
	if set {
		flag = 1
	}
	in.state.V[machine.FlagRegister] = flag
}

func (in *Interpreter) unknown(ins Instruction) error {
	address := (in.state.PC - instructionSize) & machine.AddressMask
	in.logger.Warn("Unknown opcode",
		log.Hex("address", address),
		log.Hex("opcode", ins.Word))
	if in.onUnknown != nil {
		in.onUnknown(address, ins.Word)
	}
	return nil
}

// sys calls a machine code routine of the original hardware, which is not available.
func (in *Interpreter) sys(ins Instruction) error {
	in.logger.Debug("Ignoring machine code routine call",
		log.Hex("target", ins.Address))
	return nil
}

func (in *Interpreter) cls(Instruction) error {
	in.state.Frame.Clear()
	in.state.Redraw = true
	return nil
}

func (in *Interpreter) ret(Instruction) error {
	address, err := in.state.Pop()
	if err != nil {
		return err
	}
	in.state.PC = address
	return nil
}

func (in *Interpreter) jp(ins Instruction) error {
	in.state.PC = ins.Address
	return nil
}

func (in *Interpreter) call(ins Instruction) error {
	if err := in.state.Push(in.state.PC); err != nil {
		return err
	}
	in.state.PC = ins.Address
	return nil
}

func (in *Interpreter) seByte(ins Instruction) error {
	in.skipIf(in.state.V[ins.X] == ins.Byte)
	return nil
}

func (in *Interpreter) sneByte(ins Instruction) error {
	in.skipIf(in.state.V[ins.X] != ins.Byte)
	return nil
}

func (in *Interpreter) seReg(ins Instruction) error {
	in.skipIf(in.state.V[ins.X] == in.state.V[ins.Y])
	return nil
}

func (in *Interpreter) sneReg(ins Instruction) error {
	in.skipIf(in.state.V[ins.X] != in.state.V[ins.Y])
	return nil
}

func (in *Interpreter) ldByte(ins Instruction) error {
	in.state.V[ins.X] = ins.Byte
	return nil
}

func (in *Interpreter) addByte(ins Instruction) error {
	in.state.V[ins.X] += ins.Byte
	return nil
}

func (in *Interpreter) ldReg(ins Instruction) error {
	in.state.V[ins.X] = in.state.V[ins.Y]
	return nil
}

func (in *Interpreter) or(ins Instruction) error {
	in.state.V[ins.X] |= in.state.V[ins.Y]
	return nil
}

func (in *Interpreter) and(ins Instruction) error {
	in.state.V[ins.X] &= in.state.V[ins.Y]
	return nil
}

func (in *Interpreter) xor(ins Instruction) error {
	in.state.V[ins.X] ^= in.state.V[ins.Y]
	return nil
}

// The flag writing operations store VF first and compute the result from the
// registers afterwards, with X = F the result replaces the flag.

func (in *Interpreter) addReg(ins Instruction) error {
	v := &in.state.V
	sum := uint16(v[ins.X]) + uint16(v[ins.Y])
	in.setFlag(sum > 0xFF)
	v[ins.X] = byte(sum)
	return nil
}

func (in *Interpreter) sub(ins Instruction) error {
	v := &in.state.V
	in.setFlag(v[ins.X] >= v[ins.Y])
	v[ins.X] -= v[ins.Y]
	return nil
}

func (in *Interpreter) subn(ins Instruction) error {
	v := &in.state.V
	in.setFlag(v[ins.Y] >= v[ins.X])
	v[ins.X] = v[ins.Y] - v[ins.X]
	return nil
}

func (in *Interpreter) shr(ins Instruction) error {
	v := &in.state.V
	v[machine.FlagRegister] = v[ins.X] & 0x01
	v[ins.X] >>= 1
	return nil
}

func (in *Interpreter) shl(ins Instruction) error {
	v := &in.state.V
	v[machine.FlagRegister] = v[ins.X] >> 7
	v[ins.X] <<= 1
	return nil
}

func (in *Interpreter) ldI(ins Instruction) error {
	in.state.I = ins.Address
	return nil
}

func (in *Interpreter) jpV0(ins Instruction) error {
	in.state.PC = (ins.Address + uint16(in.state.V[0])) & machine.AddressMask
	return nil
}

func (in *Interpreter) random(ins Instruction) error {
	in.state.V[ins.X] = byte(in.rnd.Uint32()) & ins.Byte
	return nil
}

// drw XORs a sprite of N rows onto the frame buffer. The start position wraps
// to the screen and every pixel wraps at the screen edges individually.
func (in *Interpreter) drw(ins Instruction) error {
	s := in.state
	x := int(s.V[ins.X] % machine.ScreenWidth)
	y := int(s.V[ins.Y] % machine.ScreenHeight)

	collision := false
	for row := range int(ins.Nibble) {
		sprite := s.Read(s.I + uint16(row))
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if s.Frame.Toggle(x+col, y+row) {
				collision = true
			}
		}
	}

	in.setFlag(collision)
	s.Redraw = true
	return nil
}

func (in *Interpreter) skp(ins Instruction) error {
	in.skipIf(in.state.Keypad.Pressed(in.state.V[ins.X]))
	return nil
}

func (in *Interpreter) sknp(ins Instruction) error {
	in.skipIf(!in.state.Keypad.Pressed(in.state.V[ins.X]))
	return nil
}

func (in *Interpreter) ldVxDT(ins Instruction) error {
	in.state.V[ins.X] = in.state.DelayTimer
	return nil
}

// ldVxK polls the keypad. Without a pressed key the program counter is moved
// back, the same instruction executes again on the next step.
func (in *Interpreter) ldVxK(ins Instruction) error {
	key, ok := in.state.Keypad.FirstPressed()
	if !ok {
		in.state.PC = (in.state.PC - instructionSize) & machine.AddressMask
		return nil
	}
	in.state.V[ins.X] = key
	return nil
}

func (in *Interpreter) ldDTVx(ins Instruction) error {
	in.state.DelayTimer = in.state.V[ins.X]
	return nil
}

func (in *Interpreter) ldSTVx(ins Instruction) error {
	in.state.SoundTimer = in.state.V[ins.X]
	return nil
}

func (in *Interpreter) addI(ins Instruction) error {
	in.state.I += uint16(in.state.V[ins.X])
	return nil
}

func (in *Interpreter) ldF(ins Instruction) error {
	in.state.I = machine.GlyphAddress(in.state.V[ins.X])
	return nil
}

func (in *Interpreter) ldB(ins Instruction) error {
	s := in.state
	value := s.V[ins.X]
	s.Write(s.I, value/100)
	s.Write(s.I+1, (value/10)%10)
	s.Write(s.I+2, value%10)
	return nil
}

// store copies V0 up to but excluding VX to memory at I.
func (in *Interpreter) store(ins Instruction) error {
	s := in.state
	for i := range ins.X {
		s.Write(s.I+uint16(i), s.V[i])
	}
	return nil
}

// load copies memory at I to V0 up to but excluding VX.
func (in *Interpreter) load(ins Instruction) error {
	s := in.state
	for i := range ins.X {
		s.V[i] = s.Read(s.I + uint16(i))
	}
	return nil
}
