package machine

// Font layout constants.
const (
	// FontStart is the memory address of the glyph for digit 0.
	FontStart = 0x50
	// GlyphSize is the number of bytes (rows) of a single glyph.
	GlyphSize = 5
	// FontSize is the size of the complete glyph table in bytes.
	FontSize = 16 * GlyphSize
)

// font contains the 4x5 pixel glyphs for the hexadecimal digits 0-F.
// Only the upper nibble of each row is used.
var font = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Font returns a copy of the built-in glyph table.
func Font() [FontSize]byte {
	return font
}

// GlyphAddress returns the memory address of the glyph for the low nibble of digit.
func GlyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}
