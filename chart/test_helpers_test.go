package chart

import "math"

// makeSilence returns an all-zero buffer.
func makeSilence(n int) []float64 {
	return make([]float64, n)
}

// makeImpulse returns a silent buffer with one burst of amplitude amp
// starting at sample `at` and lasting `width` samples.
func makeImpulse(n int, at int, width int, amp float64) []float64 {
	out := make([]float64, n)
	for i := at; i < at+width && i < n; i++ {
		out[i] = amp
	}
	return out
}

// makeClickTrack returns durationSec seconds of audio with sine-windowed
// 1 kHz bursts every intervalSec seconds. The 60 ms ramped attack spreads
// each burst across several analysis frames, so the detection curve rises
// and falls through distinct values instead of a flat plateau. Every
// fourth burst is louder so the strength split has both strong and weak
// material.
func makeClickTrack(sampleRate int, intervalSec float64, durationSec float64) []float64 {
	n := int(durationSec * float64(sampleRate))
	out := make([]float64, n)
	burstLen := int(0.06 * float64(sampleRate))
	for k := 0; ; k++ {
		start := int(float64(k) * intervalSec * float64(sampleRate))
		if start >= n {
			break
		}
		amp := 0.3
		if k%4 == 0 {
			amp = 0.9
		}
		for i := 0; i < burstLen && start+i < n; i++ {
			t := float64(i) / float64(sampleRate)
			env := math.Sin(math.Pi * float64(i) / float64(burstLen))
			out[start+i] += amp * env * math.Sin(2*math.Pi*1000*t)
		}
	}
	return out
}

func onsetsAt(times ...float64) []Onset {
	out := make([]Onset, len(times))
	for i, t := range times {
		out[i] = Onset{Time: t, Strength: 1, Salience: 1}
	}
	return out
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
