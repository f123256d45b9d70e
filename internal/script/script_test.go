package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newEngine(t *testing.T, source string) *Engine {
	t.Helper()

	e := New(log.NewTestLogger(t))
	t.Cleanup(e.Close)
	assert.NoError(t, e.LoadString(source))
	return e
}

func TestPressReleaseAndQuit(t *testing.T) {
	e := newEngine(t, `
function on_frame(frame)
  if frame == 0 then
    press(5)
    press(15)
  elseif frame == 1 then
    release(5)
  else
    quit()
  end
end
`)
	state := *machine.New()

	keys, quit, err := e.OnFrame(0, state)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, keys.Pressed(5))
	assert.True(t, keys.Pressed(15))

	keys, quit, err = e.OnFrame(1, state)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.False(t, keys.Pressed(5))
	assert.True(t, keys.Pressed(15))

	_, quit, err = e.OnFrame(2, state)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestInspectState(t *testing.T) {
	e := newEngine(t, `
result = {}
function on_frame(frame)
  result.v3 = register(3)
  result.i = index()
  result.pc = pc()
  result.delay = delay()
  result.sound = sound()
  result.peek = peek(0x300)
  result.pixel = pixel(66, 1)
  log("inspected")
  if result.v3 == 7 and result.i == 0x300 and result.pc == 0x204 and
     result.delay == 9 and result.sound == 4 and result.peek == 0xAB and result.pixel then
    quit()
  end
end
`)

	state := *machine.New()
	state.V[3] = 7
	state.I = 0x300
	state.PC = 0x204
	state.DelayTimer = 9
	state.SoundTimer = 4
	state.Memory[0x300] = 0xAB
	state.Frame.Toggle(2, 1)

	_, quit, err := e.OnFrame(0, state)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestScriptErrors(t *testing.T) {
	e := newEngine(t, `function on_frame(frame) press(16) end`)
	_, quit, err := e.OnFrame(0, *machine.New())
	assert.ErrorContains(t, err, "on_frame")
	assert.True(t, quit)

	e = New(log.NewTestLogger(t))
	t.Cleanup(e.Close)
	assert.Error(t, e.LoadString("function ("))
}

func TestNoFrameHook(t *testing.T) {
	e := newEngine(t, `x = 1`)
	keys, quit, err := e.OnFrame(0, *machine.New())
	assert.NoError(t, err)
	assert.False(t, quit)
	_, pressed := keys.FirstPressed()
	assert.False(t, pressed)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lua")
	assert.NoError(t, os.WriteFile(path, []byte("function on_frame(frame) press(1) end"), 0o600))

	e := New(log.NewTestLogger(t))
	t.Cleanup(e.Close)
	assert.NoError(t, e.LoadFile(path))

	keys, _, err := e.OnFrame(0, *machine.New())
	assert.NoError(t, err)
	assert.True(t, keys.Pressed(1))

	assert.Error(t, e.LoadFile(filepath.Join(t.TempDir(), "missing.lua")))
}
