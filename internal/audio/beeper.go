//go:build !headless

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the tone on the default audio device while the sound timer is running.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *Tone
}

// NewBeeper opens the audio device and starts the playback of the initially silent tone.
func NewBeeper(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		tone: NewTone(sampleRate),
	}
	b.player = ctx.NewPlayer(b.tone)
	b.player.Play()
	return b, nil
}

// Update turns the tone on while the sound timer is running.
func (b *Beeper) Update(active, _ bool) {
	b.tone.SetActive(active)
}

// Close stops the playback.
func (b *Beeper) Close() error {
	b.tone.SetActive(false)
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
