package machine

import "strings"

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// FrameBuffer is the monochrome 64x32 display, indexed by row and column.
// It is a value type, assigning it creates an independent snapshot.
type FrameBuffer [ScreenHeight][ScreenWidth]bool

// Clear switches all pixels off.
func (f *FrameBuffer) Clear() {
	*f = FrameBuffer{}
}

// Pixel returns whether the pixel at the given position is set.
// Coordinates wrap around the screen edges.
func (f *FrameBuffer) Pixel(x, y int) bool {
	return f[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)]
}

// Toggle flips the pixel at the given position and returns true if the pixel
// was set before, which is a collision for the draw instruction.
// Coordinates wrap around the screen edges.
func (f *FrameBuffer) Toggle(x, y int) bool {
	row, col := wrap(y, ScreenHeight), wrap(x, ScreenWidth)
	wasSet := f[row][col]
	f[row][col] = !wasSet
	return wasSet
}

// Lit returns the number of pixels that are switched on.
func (f *FrameBuffer) Lit() int {
	n := 0
	for _, row := range f {
		for _, px := range row {
			if px {
				n++
			}
		}
	}
	return n
}

// Bytes packs the frame buffer into 256 bytes, 8 pixels per byte with the
// leftmost pixel in the most significant bit.
func (f *FrameBuffer) Bytes() []byte {
	buf := make([]byte, 0, ScreenWidth*ScreenHeight/8)
	for _, row := range f {
		for col := 0; col < ScreenWidth; col += 8 {
			var b byte
			for bit := range 8 {
				if row[col+bit] {
					b |= 0x80 >> bit
				}
			}
			buf = append(buf, b)
		}
	}
	return buf
}

// String renders the frame buffer as text, one line per row,
// '#' for set pixels and '.' for cleared ones.
func (f *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for _, row := range f {
		for _, px := range row {
			if px {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
