package machine

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFrameBufferToggle(t *testing.T) {
	var f FrameBuffer

	assert.False(t, f.Toggle(0, 0))
	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Toggle(0, 0))
	assert.False(t, f.Pixel(0, 0))
}

func TestFrameBufferWrap(t *testing.T) {
	var f FrameBuffer

	f.Toggle(ScreenWidth+2, ScreenHeight+3)
	assert.True(t, f[3][2])
	assert.True(t, f.Pixel(2-ScreenWidth, 3))
	assert.Equal(t, 1, f.Lit())
}

func TestFrameBufferBytes(t *testing.T) {
	var f FrameBuffer
	f.Toggle(0, 0)
	f.Toggle(9, 0)
	f.Toggle(63, 31)

	b := f.Bytes()
	assert.Len(t, b, 256)
	assert.Equal(t, byte(0x80), b[0])
	assert.Equal(t, byte(0x40), b[1])
	assert.Equal(t, byte(0x01), b[255])
}

func TestFrameBufferString(t *testing.T) {
	var f FrameBuffer
	f.Toggle(1, 0)

	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	assert.Len(t, lines, ScreenHeight)
	assert.Equal(t, ".#"+strings.Repeat(".", ScreenWidth-2), lines[0])

	f.Clear()
	assert.Equal(t, 0, f.Lit())
}

func TestKeypad(t *testing.T) {
	var k Keypad
	_, ok := k.FirstPressed()
	assert.False(t, ok)

	k[0xB] = true
	k[0x5] = true
	key, ok := k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x5), key)
	assert.True(t, k.Pressed(0x1B))

	var other Keypad
	other[2] = true
	merged := k.Merge(other)
	assert.True(t, merged[2])
	assert.True(t, merged[0xB])
	assert.False(t, k[2])
}

func TestGlyphAddress(t *testing.T) {
	assert.Equal(t, uint16(FontStart), GlyphAddress(0))
	assert.Equal(t, uint16(FontStart+15*GlyphSize), GlyphAddress(0xF))
	assert.Equal(t, uint16(FontStart+10*GlyphSize), GlyphAddress(0x1A))
	assert.Equal(t, fontGolden, func() []byte { f := Font(); return f[:] }())
}
