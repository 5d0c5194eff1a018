package chart

import "math"

// estimateBeatPeriod infers the dominant beat period in seconds from the
// spacing of the detected onsets. It histograms the consecutive inter-onset
// intervals, takes the modal bin's center as the raw period, and folds it
// by octaves into the accepted tempo band. It cannot fail: whenever no
// dominant interval exists or folding leaves the sanity bounds, the 120 BPM
// default applies.
func estimateBeatPeriod(onsets []Onset) float64 {
	if len(onsets) < 2 {
		return defaultBeatPeriod
	}

	iois := make([]float64, len(onsets)-1)
	minIOI, maxIOI := math.Inf(1), math.Inf(-1)
	for i := 1; i < len(onsets); i++ {
		d := onsets[i].Time - onsets[i-1].Time
		iois[i-1] = d
		if d < minIOI {
			minIOI = d
		}
		if d > maxIOI {
			maxIOI = d
		}
	}

	// Zero-width histogram carries no information; fall through to the
	// default rather than divide by zero.
	if minIOI == maxIOI {
		return defaultBeatPeriod
	}

	binWidth := (maxIOI - minIOI) / histogramBins
	var counts [histogramBins]int
	for _, d := range iois {
		b := int((d - minIOI) / binWidth)
		if b >= histogramBins {
			b = histogramBins - 1
		}
		counts[b]++
	}

	best := 0
	for b := 1; b < histogramBins; b++ {
		if counts[b] > counts[best] {
			best = b
		}
	}
	period := minIOI + (float64(best)+0.5)*binWidth

	// Octave folding. Only one direction applies per call, decided by which
	// tempo bound the raw period violated.
	maxPeriod := 60.0 / minTempoBPM
	minPeriod := 60.0 / maxTempoBPM
	switch {
	case period > maxPeriod:
		for period > maxPeriod && period/2 > periodFloor {
			period /= 2
		}
	case period < minPeriod:
		for period < minPeriod && period*2 < periodCeil {
			period *= 2
		}
	}

	if math.IsNaN(period) || math.IsInf(period, 0) || period < periodFloor || period > periodCeil {
		return defaultBeatPeriod
	}
	return period
}
