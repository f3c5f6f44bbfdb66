package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type toneKind int

const (
	tonePlayerHit toneKind = iota
	toneAIHit
	toneScore
)

// toneBank plays short blips. A zero-value or disabled bank is silent.
type toneBank struct {
	mu      sync.Mutex
	enabled bool
}

// newToneBank opens the speaker. Audio is optional, so a failure returns a
// silent bank together with the error.
func newToneBank() (*toneBank, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return &toneBank{}, err
	}
	return &toneBank{enabled: true}, nil
}

// Play queues a tone without waiting for it.
func (b *toneBank) Play(kind toneKind) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return
	}

	switch kind {
	case tonePlayerHit:
		speaker.Play(tone(660, 40*time.Millisecond))
	case toneAIHit:
		speaker.Play(tone(440, 40*time.Millisecond))
	case toneScore:
		speaker.Play(beep.Seq(tone(520, 80*time.Millisecond), tone(390, 120*time.Millisecond)))
	}
}

// Close releases the audio device.
func (b *toneBank) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enabled {
		speaker.Close()
		b.enabled = false
	}
}

// tone is a sine wave with a linear fade-out so blips do not click.
func tone(freq float64, d time.Duration) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			fade := 1 - float64(pos)/float64(total)
			v := 0.2 * fade * math.Sin(2*math.Pi*freq*float64(pos)/float64(sampleRate))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	}))
}
