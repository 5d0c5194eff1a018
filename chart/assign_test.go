package chart

import "testing"

func TestStrengthPercentileFloorRounding(t *testing.T) {
	onsets := make([]Onset, 10)
	for i := range onsets {
		onsets[i] = Onset{Strength: float64(10 - i)}
	}
	// floor(10 * 0.6) = 6, so the 7th smallest value.
	if got := strengthPercentile(onsets, 0.6); got != 7 {
		t.Fatalf("percentile = %g, want 7", got)
	}
	// floor(10 * 1.0) = 10 clamps to the last index.
	if got := strengthPercentile(onsets, 1.0); got != 10 {
		t.Fatalf("percentile at 1.0 = %g, want 10", got)
	}
}

func TestAssignNotesAlternatesPairsIndependently(t *testing.T) {
	onsets := []Onset{
		{Time: 0.0, Strength: 1},
		{Time: 0.5, Strength: 10},
		{Time: 1.0, Strength: 2},
		{Time: 1.5, Strength: 9},
		{Time: 2.0, Strength: 3},
	}
	p := Profile{MinSeparation: 0.1, Sensitivity: 1, Subdivisions: []float64{1}, StrengthPercentile: 0.6}
	notes := assignNotes(onsets, p)
	// Threshold is the value at floor(5*0.6)=3 of [1 2 3 9 10], i.e. 9:
	// strengths 10 and 9 are strong, the rest weak.
	want := []Lane{LaneDown, LaneLeft, LaneUp, LaneRight, LaneDown}
	if len(notes) != len(want) {
		t.Fatalf("note count = %d, want %d", len(notes), len(want))
	}
	for i, n := range notes {
		if n.Lane != want[i] {
			t.Fatalf("note %d lane = %v, want %v", i, n.Lane, want[i])
		}
	}
}

func TestAssignNotesStrongAndWeakNeverMixPairs(t *testing.T) {
	onsets := make([]Onset, 40)
	for i := range onsets {
		onsets[i] = Onset{Time: float64(i) * 0.25, Strength: float64(i%17) + 1}
	}
	p := DifficultyHard.Profile()
	p.MinSeparation = 0.1
	notes := assignNotes(onsets, p)
	if len(notes) == 0 {
		t.Fatal("expected notes")
	}
	var lastStrong, lastWeak Lane = -1, -1
	for i, n := range notes {
		if n.Lane.IsStrong() {
			if n.Lane == lastStrong {
				t.Fatalf("note %d: strong lane %v repeated", i, n.Lane)
			}
			lastStrong = n.Lane
		} else {
			if n.Lane == lastWeak {
				t.Fatalf("note %d: weak lane %v repeated", i, n.Lane)
			}
			lastWeak = n.Lane
		}
	}
}

func TestDedupeMillisecondsKeepsHigherSalience(t *testing.T) {
	notes := []laneNote{
		{time: 0.5, lane: LaneLeft, salience: 0.2},
		{time: 0.5, lane: LaneRight, salience: 0.9},
		{time: 1.0, lane: LaneDown, salience: 0.1},
	}
	got := dedupeMilliseconds(notes)
	if len(got) != 2 {
		t.Fatalf("deduped count = %d, want 2", len(got))
	}
	if got[0].lane != LaneRight || got[0].salience != 0.9 {
		t.Fatalf("kept %+v, want the higher-salience note", got[0])
	}
}

func TestDedupeMillisecondsTiesKeepFirstInserted(t *testing.T) {
	notes := []laneNote{
		{time: 0.25, lane: LaneUp, salience: 0.4},
		{time: 0.25, lane: LaneDown, salience: 0.4},
	}
	got := dedupeMilliseconds(notes)
	if len(got) != 1 || got[0].lane != LaneUp {
		t.Fatalf("tie broke wrong: got %+v, want the first inserted note", got)
	}
}

func TestMinSeparationFilterIsGreedy(t *testing.T) {
	notes := []laneNote{
		{time: 0.0}, {time: 0.29}, {time: 0.58},
	}
	got := minSeparationFilter(notes, 0.3)
	// 0.29 drops because it is too close to 0.0; 0.58 survives against the
	// last KEPT note (0.0), not against the dropped 0.29.
	if len(got) != 2 || got[0].Time != 0 || got[1].Time != 0.58 {
		t.Fatalf("greedy filter produced %+v, want times [0, 0.58]", got)
	}
}

func TestMinSeparationFilterAlwaysKeepsFirst(t *testing.T) {
	notes := []laneNote{{time: 1.0}, {time: 1.01}, {time: 1.02}}
	got := minSeparationFilter(notes, 0.5)
	if len(got) != 1 || got[0].Time != 1.0 {
		t.Fatalf("got %+v, want only the first note", got)
	}
}

func TestAssignNotesDeduplicatesQuantizedCollisions(t *testing.T) {
	// Two onsets already snapped onto the same grid line must yield one
	// note, the one derived from the higher-salience source.
	onsets := []Onset{
		{Time: 0.5, Strength: 1, Salience: 0.2},
		{Time: 0.5, Strength: 1, Salience: 0.9},
	}
	p := Profile{MinSeparation: 0.1, Sensitivity: 1, Subdivisions: []float64{1}, StrengthPercentile: 0.6}
	notes := assignNotes(onsets, p)
	if len(notes) != 1 {
		t.Fatalf("note count = %d, want 1 after deduplication", len(notes))
	}
	// Both onsets are strong (threshold equals their shared strength); the
	// second one drew the alternated lane before deduplication replaced the
	// first in place.
	if notes[0].Lane != LaneRight {
		t.Fatalf("kept lane = %v, want %v (note from higher-salience source)", notes[0].Lane, LaneRight)
	}
}
