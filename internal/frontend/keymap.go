// Package frontend contains the keyboard layout shared by the interactive frontends.
//
// The hexadecimal keypad is mapped to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package frontend

// Layout maps every keypad key to its keyboard character.
var Layout = [16]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// KeyForRune returns the keypad key that is mapped to the character,
// upper case letters are accepted.
func KeyForRune(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key, mapped := range Layout {
		if mapped == r {
			return byte(key), true
		}
	}
	return 0, false
}
