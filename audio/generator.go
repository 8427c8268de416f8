package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// HumGenerator is an endless low drone; its pitch is bent by the resampler in front of it
type HumGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewHumGenerator creates a hum generator at freq Hz
func NewHumGenerator(sr beep.SampleRate, freq float64) *HumGenerator {
	return &HumGenerator{sr: sr, freq: freq}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus a soft fifth, slow tremolo
		sample := 0.6*math.Sin(2*math.Pi*g.freq*t) + 0.25*math.Sin(2*math.Pi*g.freq*1.5*t)
		sample *= 0.12 * (0.8 + 0.2*math.Sin(2*math.Pi*0.5*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// WhooshGenerator is a finite downward sweep from 600Hz to 80Hz
type WhooshGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewWhooshGenerator creates a whoosh lasting d
func NewWhooshGenerator(sr beep.SampleRate, d time.Duration) *WhooshGenerator {
	return &WhooshGenerator{sr: sr, total: sr.N(d)}
}

func (g *WhooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for n = 0; n < len(samples) && g.pos < g.total; n++ {
		progress := float64(g.pos) / float64(g.total)
		freq := 600 * math.Pow(80.0/600.0, progress)
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		envelope := math.Sin(progress * math.Pi)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[n][0] = sample
		samples[n][1] = sample
		g.pos++
	}
	return n, true
}

func (g *WhooshGenerator) Err() error {
	return nil
}

// ChimeGenerator is a finite bell: fundamental and octave with exponential decay
type ChimeGenerator struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewChimeGenerator creates a chime at freq Hz lasting d
func NewChimeGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for n = 0; n < len(samples) && g.pos < g.total; n++ {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 12)
		sample := envelope * (0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2*t))
		sample *= 0.3

		samples[n][0] = sample
		samples[n][1] = sample
		g.pos++
	}
	return n, true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
