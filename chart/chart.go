// Package chart turns a mono audio buffer into a rhythm-game note chart.
//
// The analysis is a single-pass pipeline: sliding RMS envelope, rectified
// and smoothed onset curve, adaptive peak picking, tempo estimation from
// inter-onset statistics, rhythmic quantization, and amplitude-based lane
// assignment with deduplication and spacing enforcement. It is pure and
// deterministic: independent calls may run concurrently, nothing is shared
// between them.
package chart

import "fmt"

// Result exposes the pipeline output together with the intermediate stages,
// for diagnostics and tuning tools. Notes is the externally meaningful part.
type Result struct {
	// Envelope is the per-frame RMS energy of the input.
	Envelope []float64
	// OnsetCurve is the smoothed, rectified envelope difference.
	OnsetCurve []float64
	// Onsets are the detected candidates before quantization.
	Onsets []Onset
	// BeatPeriod is the estimated beat period in seconds.
	BeatPeriod float64
	// Notes is the final chart, strictly time-ascending with at least the
	// profile's minimum separation between consecutive entries.
	Notes []Note
}

// BPM returns the estimated tempo in beats per minute.
func (r Result) BPM() float64 {
	if r.BeatPeriod <= 0 {
		return 0
	}
	return 60.0 / r.BeatPeriod
}

// Generate analyzes a mono sample buffer and returns the note chart for the
// chosen difficulty. It is the single entry point for consumers that do not
// need intermediate data. An empty buffer or a non-positive sample rate is
// the only error condition; every later stage degrades to an empty or
// default result instead of failing.
func Generate(samples []float64, sampleRate int, d Difficulty) ([]Note, error) {
	res, err := Analyze(samples, sampleRate, d.Profile())
	if err != nil {
		return nil, err
	}
	return res.Notes, nil
}

// Analyze runs the full pipeline under an explicit profile and returns the
// intermediate stages alongside the chart.
func Analyze(samples []float64, sampleRate int, p Profile) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("empty sample buffer")
	}
	if sampleRate <= 0 {
		return Result{}, fmt.Errorf("sample rate must be > 0, got %d", sampleRate)
	}
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid profile: %w", err)
	}

	envelope := rmsEnvelope(samples, windowSize, hopSize)
	curve := onsetCurve(envelope)
	onsets := pickOnsets(curve, envelope, sampleRate, p.Sensitivity)
	beat := estimateBeatPeriod(onsets)
	quantized := quantizeOnsets(onsets, beat, p.Subdivisions)
	notes := assignNotes(quantized, p)

	return Result{
		Envelope:   envelope,
		OnsetCurve: curve,
		Onsets:     onsets,
		BeatPeriod: beat,
		Notes:      notes,
	}, nil
}
