package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth     = 16
	channelCount = 1
	formatPCM    = 1
)

// Recorder writes the tone of every frame to a WAV stream.
type Recorder struct {
	encoder         *wav.Encoder
	tone            *Tone
	buffer          *audio.IntBuffer
	samplesPerFrame int
	frames          int
	tones           int
	err             error
}

// NewRecorder returns a recorder that writes frames of 1/frameRate seconds.
func NewRecorder(w io.WriteSeeker, sampleRate, frameRate int) *Recorder {
	frameRate = max(frameRate, 1)
	samplesPerFrame := sampleRate / frameRate

	return &Recorder{
		encoder:         wav.NewEncoder(w, sampleRate, bitDepth, channelCount, formatPCM),
		tone:            NewTone(sampleRate),
		samplesPerFrame: samplesPerFrame,
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channelCount,
				SampleRate:  sampleRate,
			},
			Data:           make([]int, samplesPerFrame),
			SourceBitDepth: bitDepth,
		},
	}
}

// Update records the samples of one frame.
// The first write error stops the recording and is returned by Close.
func (r *Recorder) Update(active, expired bool) {
	if r.err != nil {
		return
	}

	r.tone.SetActive(active)
	for i := range r.buffer.Data {
		r.buffer.Data[i] = int(r.tone.Sample())
	}
	if err := r.encoder.Write(r.buffer); err != nil {
		r.err = fmt.Errorf("writing samples: %w", err)
		return
	}

	r.frames++
	if expired {
		r.tones++
	}
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// Tones returns the number of finished tones.
func (r *Recorder) Tones() int {
	return r.tones
}

// Close finishes the WAV header, the underlying writer is not closed.
func (r *Recorder) Close() error {
	if r.err != nil {
		return r.err
	}
	if err := r.encoder.Close(); err != nil {
		return fmt.Errorf("finishing wav stream: %w", err)
	}
	return nil
}
