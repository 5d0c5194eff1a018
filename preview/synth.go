// Package preview renders an audible click track from a note chart so a
// generated chart can be auditioned against its source material.
package preview

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-chart/chart"
)

// Config controls click-track rendering. Strong-pair and weak-pair notes
// get distinct pitches so the lane split is audible.
type Config struct {
	SampleRate int
	StrongFreq float64
	WeakFreq   float64
	DecayS     float64 // exponential decay constant of each click
	Gain       float64
	TailS      float64 // silence appended after the last click
	LowpassHz  float64 // tone-shaping lowpass cutoff; 0 disables

	// Source, when set, is mixed underneath the clicks at SourceGain.
	Source     []float64
	SourceGain float64
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		StrongFreq: 1320.0,
		WeakFreq:   880.0,
		DecayS:     0.04,
		Gain:       0.8,
		TailS:      0.5,
		LowpassHz:  7000.0,
		SourceGain: 0.25,
	}
}

func (c *Config) Validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample rate too low: %d", c.SampleRate)
	}
	if c.StrongFreq <= 0 || c.WeakFreq <= 0 {
		return fmt.Errorf("click frequencies must be > 0")
	}
	if c.DecayS <= 0 {
		return fmt.Errorf("decay must be > 0")
	}
	if c.Gain <= 0 {
		return fmt.Errorf("gain must be > 0")
	}
	if c.TailS < 0 {
		return fmt.Errorf("tail must be >= 0")
	}
	if c.LowpassHz < 0 || c.LowpassHz >= float64(c.SampleRate)/2 {
		return fmt.Errorf("lowpass cutoff must be in [0, nyquist)")
	}
	if c.SourceGain < 0 {
		return fmt.Errorf("source gain must be >= 0")
	}
	return nil
}

// Render synthesizes the click track. The output is long enough to cover
// the last note plus the configured tail, or the whole source when one is
// mixed in. Samples clip to [-1, 1].
func Render(notes []chart.Note, cfg Config) ([]float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sr := float64(cfg.SampleRate)
	var lastTime float64
	for _, n := range notes {
		if n.Time > lastTime {
			lastTime = n.Time
		}
	}
	frames := int((lastTime + cfg.TailS) * sr)
	if len(cfg.Source) > frames {
		frames = len(cfg.Source)
	}
	if frames < 1 {
		frames = 1
	}

	out := make([]float32, frames)
	if len(cfg.Source) > 0 && cfg.SourceGain > 0 {
		g := float32(cfg.SourceGain)
		for i, v := range cfg.Source {
			out[i] = g * float32(v)
		}
	}

	// Render each click until its envelope has decayed to roughly -35 dB.
	clickLen := int(4 * cfg.DecayS * sr)
	for _, n := range notes {
		start := int(n.Time * sr)
		if start < 0 || start >= frames {
			continue
		}
		freq := cfg.WeakFreq
		if n.Lane.IsStrong() {
			freq = cfg.StrongFreq
		}
		for i := 0; i < clickLen && start+i < frames; i++ {
			t := float64(i) / sr
			env := approx.FastExp(float32(-t / cfg.DecayS))
			out[start+i] += float32(cfg.Gain) * env * float32(math.Sin(2*math.Pi*freq*t))
		}
	}

	if cfg.LowpassHz > 0 {
		lp := newLowpass(cfg.LowpassHz, sr, 0.707)
		for i, v := range out {
			out[i] = lp.process(v)
		}
	}

	for i, v := range out {
		if v > 1 {
			out[i] = 1
		} else if v < -1 {
			out[i] = -1
		}
	}
	return out, nil
}
