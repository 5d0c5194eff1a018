package chart

import "math"

// quantizeOnsets snaps each onset to the rhythmic grid anchored at the
// first onset's time. Every subdivision of the profile is tried per onset
// and the globally closest grid line wins; finer subdivisions have no
// inherent preference, only proximity. Strength and salience pass through
// untouched. Snapped times clamp to zero from below.
func quantizeOnsets(onsets []Onset, beatPeriod float64, subdivisions []float64) []Onset {
	if len(onsets) == 0 {
		return nil
	}

	origin := onsets[0].Time
	out := make([]Onset, len(onsets))
	for i, o := range onsets {
		snapped := o.Time
		bestErr := math.Inf(1)
		for _, sub := range subdivisions {
			step := beatPeriod * sub
			if step <= 0 {
				continue
			}
			g := origin + math.Round((o.Time-origin)/step)*step
			if e := math.Abs(g - o.Time); e < bestErr {
				bestErr = e
				snapped = g
			}
		}
		if snapped < 0 {
			snapped = 0
		}
		out[i] = Onset{Time: snapped, Strength: o.Strength, Salience: o.Salience}
	}
	return out
}
