//go:build headless

package audio

// Beeper is a silent replacement for builds without audio device support.
type Beeper struct {
	tone *Tone
}

// NewBeeper returns a beeper that does not output any sound.
func NewBeeper(sampleRate int) (*Beeper, error) {
	return &Beeper{tone: NewTone(sampleRate)}, nil
}

// Update tracks the tone state.
func (b *Beeper) Update(active, _ bool) {
	b.tone.SetActive(active)
}

// Close is a no-op.
func (b *Beeper) Close() error {
	return nil
}
