package chart

import (
	timestats "github.com/cwbudde/algo-dsp/stats/time"
)

// rmsEnvelope slides a window of `window` samples in steps of `hop` across
// the buffer and returns one RMS value per full window. Trailing samples
// that do not fill a window are ignored. Returns nil when no full window
// fits.
func rmsEnvelope(samples []float64, window int, hop int) []float64 {
	if window <= 0 || hop <= 0 || len(samples) < window {
		return nil
	}
	n := 1 + (len(samples)-window)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = timestats.RMS(samples[start : start+window])
	}
	return out
}

// onsetCurve turns the envelope into a rectified first-difference curve and
// smooths it with a centered moving average. Energy decreases are not
// onsets, so negative deltas clamp to zero. Boundary frames average over
// however many in-range neighbors exist; there is no padding. The output
// has the same length as the envelope so frame index i still maps to time
// i*hop/sampleRate.
func onsetCurve(envelope []float64) []float64 {
	if len(envelope) == 0 {
		return nil
	}

	raw := make([]float64, len(envelope))
	for i := 1; i < len(envelope); i++ {
		if d := envelope[i] - envelope[i-1]; d > 0 {
			raw[i] = d
		}
	}

	half := smoothingWidth / 2
	out := make([]float64, len(raw))
	for i := range raw {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(raw)-1 {
			hi = len(raw) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += raw[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// frameTime converts a frame index to seconds.
func frameTime(index int, sampleRate int) float64 {
	return float64(index) * float64(hopSize) / float64(sampleRate)
}
