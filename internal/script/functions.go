package script

import (
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

// checkKey returns the keypad key argument at position n.
func checkKey(L *lua.LState, n int) int {
	key := L.CheckInt(n)
	if key < 0 || key >= machine.KeyCount {
		L.ArgError(n, "key must be between 0 and 15")
	}
	return key
}

func (e *Engine) press(L *lua.LState) int {
	e.keys[checkKey(L, 1)] = true
	return 0
}

func (e *Engine) release(L *lua.LState) int {
	e.keys[checkKey(L, 1)] = false
	return 0
}

func (e *Engine) requestQuit(*lua.LState) int {
	e.quit = true
	return 0
}

func (e *Engine) readRegister(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n >= machine.RegisterCount {
		L.ArgError(1, "register must be between 0 and 15")
	}
	L.Push(lua.LNumber(e.machine.V[n]))
	return 1
}

func (e *Engine) index(L *lua.LState) int {
	L.Push(lua.LNumber(e.machine.I))
	return 1
}

func (e *Engine) pc(L *lua.LState) int {
	L.Push(lua.LNumber(e.machine.PC))
	return 1
}

func (e *Engine) delay(L *lua.LState) int {
	L.Push(lua.LNumber(e.machine.DelayTimer))
	return 1
}

func (e *Engine) sound(L *lua.LState) int {
	L.Push(lua.LNumber(e.machine.SoundTimer))
	return 1
}

func (e *Engine) peek(L *lua.LState) int {
	address := L.CheckInt(1)
	L.Push(lua.LNumber(e.machine.Read(uint16(address))))
	return 1
}

func (e *Engine) pixel(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	L.Push(lua.LBool(e.machine.Frame.Pixel(x, y)))
	return 1
}

func (e *Engine) log(L *lua.LState) int {
	e.logger.Info(L.CheckString(1), log.String("source", "script"))
	return 0
}
