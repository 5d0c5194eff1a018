package chart

import (
	"math"
	"sort"

	timestats "github.com/cwbudde/algo-dsp/stats/time"
)

// pickOnsets runs adaptive peak detection over the onset curve. The
// detection statistics are taken over strictly positive curve values only,
// so long silent stretches do not drag the threshold toward zero. A sample
// qualifies when it strictly exceeds both neighbors and the dynamic
// threshold mean + std*sensitivity.
//
// The leading-onset rescue catches a genuine strong attack at the very
// start of the track that ramps up without forming a sharp local peak: the
// first sample above the loose threshold mean + std*rescueSensitivity is
// added when it precedes the first regular candidate by more than
// rescueLead seconds, or when there are no regular candidates at all.
func pickOnsets(curve []float64, envelope []float64, sampleRate int, sensitivity float64) []Onset {
	if len(curve) < 3 {
		return nil
	}

	var positive []float64
	for _, v := range curve {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return nil
	}

	mean, variance, _, _ := timestats.Moments(positive)
	std := math.Sqrt(variance)
	threshold := mean + std*sensitivity

	var onsets []Onset
	for i := 1; i < len(curve)-1; i++ {
		if curve[i] > curve[i-1] && curve[i] > curve[i+1] && curve[i] > threshold {
			onsets = append(onsets, Onset{
				Time:     frameTime(i, sampleRate),
				Strength: envelope[i],
				Salience: curve[i],
			})
		}
	}

	loose := mean + std*rescueSensitivity
	for i, v := range curve {
		if v <= loose {
			continue
		}
		t := frameTime(i, sampleRate)
		if len(onsets) == 0 || t < onsets[0].Time-rescueLead {
			onsets = append(onsets, Onset{Time: t, Strength: envelope[i], Salience: v})
		}
		break
	}

	// The rescue appends out of order.
	sort.Slice(onsets, func(i, j int) bool { return onsets[i].Time < onsets[j].Time })
	return onsets
}
