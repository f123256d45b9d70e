package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestToneSquareWave(t *testing.T) {
	tone := NewTone(8800) // period of 20 samples
	assert.False(t, tone.Active())
	assert.Equal(t, int16(0), tone.Sample())

	tone.SetActive(true)
	high, low := 0, 0
	for range 20 {
		switch tone.Sample() {
		case amplitude:
			high++
		case -amplitude:
			low++
		}
	}
	assert.Equal(t, 10, high)
	assert.Equal(t, 10, low)
}

func TestToneRead(t *testing.T) {
	tone := NewTone(DefaultSampleRate)
	tone.SetActive(true)

	buf := make([]byte, 7)
	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, byte(amplitude&0xFF), buf[0])
	assert.Equal(t, byte(amplitude>>8), buf[1])
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sound.wav")
	f, err := os.Create(path)
	assert.NoError(t, err)

	r := NewRecorder(f, 6000, 60)
	r.Update(true, false)
	r.Update(false, true)
	r.Update(false, false)
	assert.NoError(t, r.Close())
	assert.NoError(t, f.Close())
	assert.Equal(t, 3, r.Frames())
	assert.Equal(t, 1, r.Tones())

	f, err = os.Open(path)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	assert.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, uint32(6000), dec.SampleRate)
	assert.Len(t, buf.Data, 300)

	active := 0
	for _, sample := range buf.Data[:100] {
		if sample != 0 {
			active++
		}
	}
	assert.Equal(t, 100, active)
	for _, sample := range buf.Data[100:] {
		assert.Equal(t, 0, sample)
	}
}
