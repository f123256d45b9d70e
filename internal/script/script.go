// Package script runs Lua scripts that observe and control the machine once per frame.
//
// A script defines a global function on_frame(frame) that is called after
// every frame. The following functions are available to it:
//
//	press(key)        hold down a keypad key (0-15) until it is released
//	release(key)      release a keypad key
//	quit()            stop the emulation after the current frame
//	register(n)       value of register Vn
//	index()           value of the index register I
//	pc()              value of the program counter
//	delay()           value of the delay timer
//	sound()           value of the sound timer
//	peek(address)     memory byte at the address
//	pixel(x, y)       whether the pixel is lit
//	log(message)      write an info log message
package script

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

const frameHook = "on_frame"

// Engine executes a script, it implements the frame hook of the runner.
type Engine struct {
	logger *log.Logger
	state  *lua.LState

	machine machine.State // state of the current frame
	keys    machine.Keypad
	quit    bool
}

// New returns an engine with the machine functions registered.
func New(logger *log.Logger) *Engine {
	e := &Engine{
		logger: logger,
		state:  lua.NewState(),
	}
	e.registerFunctions()
	return e
}

// LoadFile executes the script file, which defines the hook functions.
func (e *Engine) LoadFile(path string) error {
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("loading script '%s': %w", path, err)
	}
	return nil
}

// LoadString executes the script source.
func (e *Engine) LoadString(source string) error {
	if err := e.state.DoString(source); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return nil
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.state.Close()
}

// OnFrame calls the frame hook of the script with the state of the finished frame.
// It returns the keys held by the script and whether the script requested to quit.
func (e *Engine) OnFrame(frame uint64, state machine.State) (machine.Keypad, bool, error) {
	e.machine = state

	hook := e.state.GetGlobal(frameHook)
	if hook.Type() != lua.LTFunction {
		return e.keys, e.quit, nil
	}

	err := e.state.CallByParam(lua.P{
		Fn:      hook,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(frame))
	if err != nil {
		return machine.Keypad{}, true, fmt.Errorf("calling %s: %w", frameHook, err)
	}
	return e.keys, e.quit, nil
}

func (e *Engine) registerFunctions() {
	functions := map[string]lua.LGFunction{
		"press":    e.press,
		"release":  e.release,
		"quit":     e.requestQuit,
		"register": e.readRegister,
		"index":    e.index,
		"pc":       e.pc,
		"delay":    e.delay,
		"sound":    e.sound,
		"peek":     e.peek,
		"pixel":    e.pixel,
		"log":      e.log,
	}
	for name, fn := range functions {
		e.state.SetGlobal(name, e.state.NewFunction(fn))
	}
}
