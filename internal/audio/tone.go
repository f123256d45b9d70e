// Package audio implements the sound outputs of the sound timer: a live
// square wave beeper and a WAV file recorder.
package audio

import "sync/atomic"

const (
	// DefaultSampleRate is the sample rate of the generated tone.
	DefaultSampleRate = 44100

	// ToneFrequency is the frequency of the square wave in Hz.
	ToneFrequency = 440

	amplitude = 8000
)

// Tone generates a square wave while it is active and silence otherwise.
// Active can be changed concurrently to reading samples.
type Tone struct {
	active     atomic.Bool
	sampleRate int
	phase      int
}

// NewTone returns a new inactive tone generator.
func NewTone(sampleRate int) *Tone {
	return &Tone{sampleRate: sampleRate}
}

// SetActive turns the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Sample returns the next sample as signed 16 bit value.
func (t *Tone) Sample() int16 {
	period := t.sampleRate / ToneFrequency
	t.phase = (t.phase + 1) % period

	if !t.active.Load() {
		return 0
	}
	if t.phase < period/2 {
		return amplitude
	}
	return -amplitude
}

// Read fills p with signed 16 bit little endian mono samples.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		sample := uint16(t.Sample())
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)
	}
	return n, nil
}
