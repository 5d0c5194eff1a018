package chart

import (
	"math"
	"sort"
)

// laneNote is a lane-assigned note that still carries the salience of the
// onset it came from, so deduplication can compare provenance directly
// instead of re-deriving it from time matching.
type laneNote struct {
	time     float64
	lane     Lane
	salience float64
}

// laneState threads the two alternation trackers through the assignment
// walk. Each pair alternates independently: a strong note flips the strong
// tracker no matter how many weak notes intervened, and vice versa.
type laneState struct {
	lastStrong Lane
	lastWeak   Lane
}

func newLaneState() laneState {
	// First strong note lands on left, first weak note on down.
	return laneState{lastStrong: LaneRight, lastWeak: LaneUp}
}

func (s *laneState) nextStrong() Lane {
	if s.lastStrong == LaneLeft {
		s.lastStrong = LaneRight
	} else {
		s.lastStrong = LaneLeft
	}
	return s.lastStrong
}

func (s *laneState) nextWeak() Lane {
	if s.lastWeak == LaneDown {
		s.lastWeak = LaneUp
	} else {
		s.lastWeak = LaneDown
	}
	return s.lastWeak
}

// assignNotes converts quantized onsets into the final note list: lane
// assignment by relative strength, millisecond deduplication, then the
// greedy minimum-separation filter.
func assignNotes(onsets []Onset, p Profile) []Note {
	if len(onsets) == 0 {
		return nil
	}

	// Quantization can reorder near-coincident onsets; the walk below
	// requires time order. Stable so equal times keep insertion order.
	sorted := append([]Onset(nil), onsets...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	threshold := strengthPercentile(sorted, p.StrengthPercentile)

	state := newLaneState()
	notes := make([]laneNote, 0, len(sorted))
	for _, o := range sorted {
		var lane Lane
		if o.Strength >= threshold {
			lane = state.nextStrong()
		} else {
			lane = state.nextWeak()
		}
		notes = append(notes, laneNote{time: o.Time, lane: lane, salience: o.Salience})
	}

	return minSeparationFilter(dedupeMilliseconds(notes), p.MinSeparation)
}

// strengthPercentile returns the strength value at the given percentile,
// using floor-index rounding over the ascending sort.
func strengthPercentile(onsets []Onset, percentile float64) float64 {
	strengths := make([]float64, len(onsets))
	for i, o := range onsets {
		strengths[i] = o.Strength
	}
	sort.Float64s(strengths)
	idx := int(math.Floor(float64(len(strengths)) * percentile))
	if idx > len(strengths)-1 {
		idx = len(strengths) - 1
	}
	return strengths[idx]
}

// dedupeMilliseconds collapses notes whose times round to the same
// millisecond, keeping the one with higher salience. Ties keep whichever
// was inserted first. Quantization maps nearby onsets onto the same grid
// line; without this the chart would contain ambiguous simultaneous notes.
func dedupeMilliseconds(notes []laneNote) []laneNote {
	out := make([]laneNote, 0, len(notes))
	index := make(map[int64]int, len(notes))
	for _, n := range notes {
		ms := int64(math.Round(n.time * 1000))
		if j, ok := index[ms]; ok {
			if n.salience > out[j].salience {
				out[j] = n
			}
			continue
		}
		index[ms] = len(out)
		out = append(out, n)
	}
	return out
}

// minSeparationFilter greedily walks the time-sorted notes, always keeping
// the first and then each note at least minSep after the last KEPT one.
// Greedy by contract: a different choice of kept notes could retain more
// total notes, but the forward walk is the required behavior.
func minSeparationFilter(notes []laneNote, minSep float64) []Note {
	if len(notes) == 0 {
		return nil
	}
	out := make([]Note, 0, len(notes))
	out = append(out, Note{Time: notes[0].time, Lane: notes[0].lane})
	lastKept := notes[0].time
	for _, n := range notes[1:] {
		if n.time-lastKept >= minSep {
			out = append(out, Note{Time: n.time, Lane: n.lane})
			lastKept = n.time
		}
	}
	return out
}
