package machine

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the keys 0-F.
type Keypad [KeyCount]bool

// Pressed returns whether the key for the low nibble of key is pressed.
func (k Keypad) Pressed(key byte) bool {
	return k[key&0x0F]
}

// FirstPressed returns the lowest index of a pressed key.
func (k Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}

// Merge returns a keypad where every key is pressed that is pressed in k or other.
func (k Keypad) Merge(other Keypad) Keypad {
	for i, pressed := range other {
		if pressed {
			k[i] = true
		}
	}
	return k
}
