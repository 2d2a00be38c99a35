package game

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFrequency  = 880.0
	chimeDuration   = 120 * time.Millisecond
	chimeVolume     = 0.25
)

// Chime plays a short tone after each successful reload. The speaker is
// opened on first use.
type Chime struct {
	once    sync.Once
	initErr error
}

func NewChime() *Chime { return &Chime{} }

// Play starts the tone and returns immediately.
func (c *Chime) Play() error {
	c.once.Do(func() {
		c.initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/20))
	})
	if c.initErr != nil {
		return c.initErr
	}
	speaker.Play(tone(chimeSampleRate, chimeFrequency, chimeDuration))
	return nil
}

// tone is a sine wave of the given frequency and length that fades out.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	return beep.Take(n, &envelope{Source: sine(sr, freq), total: n})
}

func sine(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := chimeVolume * math.Sin(phase)
			samples[i] = [2]float64{v, v}
			phase += step
		}
		return len(samples), true
	})
}

// envelope wraps a beep.Streamer and scales it by a quadratic fade that
// reaches silence after total samples.
type envelope struct {
	Source beep.Streamer
	pos    int
	total  int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Source.Stream(samples)
	for i := 0; i < n; i++ {
		g := 0.0
		if e.pos < e.total {
			r := 1 - float64(e.pos)/float64(e.total)
			g = r * r
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.Source.Err() }
