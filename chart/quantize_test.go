package chart

import "testing"

func TestQuantizeOnsetsEmptyInput(t *testing.T) {
	if got := quantizeOnsets(nil, 0.5, []float64{1}); got != nil {
		t.Fatalf("expected nil output for no onsets, got %v", got)
	}
}

func TestQuantizeOnsetsAnchorsGridAtFirstOnset(t *testing.T) {
	onsets := onsetsAt(0.13, 0.65, 1.11)
	got := quantizeOnsets(onsets, 0.5, []float64{1})
	if got[0].Time != 0.13 {
		t.Fatalf("first onset moved off the grid origin: %g", got[0].Time)
	}
	if !approxEqual(got[1].Time, 0.63, 1e-9) {
		t.Fatalf("second onset = %g, want 0.63 (origin + 1 beat)", got[1].Time)
	}
	if !approxEqual(got[2].Time, 1.13, 1e-9) {
		t.Fatalf("third onset = %g, want 1.13 (origin + 2 beats)", got[2].Time)
	}
}

func TestQuantizeOnsetsPicksClosestAcrossSubdivisions(t *testing.T) {
	// 0.24 after the origin sits much closer to the 0.5-beat line (0.25)
	// than to any whole-beat line; proximity, not fineness, decides.
	onsets := onsetsAt(0, 0.24)
	got := quantizeOnsets(onsets, 0.5, []float64{1, 0.5})
	if !approxEqual(got[1].Time, 0.25, 1e-9) {
		t.Fatalf("onset = %g, want 0.25 (half-beat grid line)", got[1].Time)
	}
}

func TestQuantizeOnsetsCarriesStrengthAndSalience(t *testing.T) {
	onsets := []Onset{{Time: 0.1, Strength: 0.7, Salience: 0.3}, {Time: 0.62, Strength: 0.2, Salience: 0.9}}
	got := quantizeOnsets(onsets, 0.5, []float64{1})
	for i := range onsets {
		if got[i].Strength != onsets[i].Strength || got[i].Salience != onsets[i].Salience {
			t.Fatalf("onset %d lost payload: got %+v, want strength/salience of %+v", i, got[i], onsets[i])
		}
	}
}

func TestQuantizeOnsetsSkipsZeroStepSubdivisions(t *testing.T) {
	onsets := onsetsAt(0, 0.74)
	got := quantizeOnsets(onsets, 0.5, []float64{0, 1})
	if !approxEqual(got[1].Time, 0.5, 1e-9) {
		t.Fatalf("onset = %g, want 0.5 (zero-step subdivision skipped)", got[1].Time)
	}
}

func TestQuantizeOnsetsClampsNegativeTimes(t *testing.T) {
	// An onset just after a negative-leaning origin can snap below zero.
	onsets := []Onset{{Time: 0.02}, {Time: 0.21}}
	got := quantizeOnsets(onsets, 0.5, []float64{1})
	for i, o := range got {
		if o.Time < 0 {
			t.Fatalf("onset %d snapped below zero: %g", i, o.Time)
		}
	}
}
