package frontend

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r     rune
		key   byte
		found bool
	}{
		{'x', 0x0, true},
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'Q', 0x4, true},
		{'v', 0xF, true},
		{'p', 0, false},
		{'0', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, found := KeyForRune(tt.r)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLayoutIsUnique(t *testing.T) {
	seen := map[rune]bool{}
	for _, r := range Layout {
		assert.False(t, seen[r], "character %c is mapped twice", r)
		seen[r] = true
	}
	assert.Len(t, seen, 16)
}
