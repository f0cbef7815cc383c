package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// NewChime opens the speaker and returns a short two tone chime.
func NewChime() (func(), error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return func() {
		low, err := generators.SineTone(sampleRate, 660)
		if err != nil {
			return
		}
		high, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			return
		}
		d := sampleRate.N(80 * time.Millisecond)
		speaker.Play(beep.Seq(beep.Take(d, low), beep.Take(d, high)))
	}, nil
}

func CloseChime() {
	speaker.Close()
}
