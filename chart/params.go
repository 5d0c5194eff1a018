package chart

import (
	"fmt"
	"math"
)

// Lane identifies one of the four note directions.
type Lane int

const (
	LaneLeft Lane = iota
	LaneDown
	LaneUp
	LaneRight
)

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneDown:
		return "down"
	case LaneUp:
		return "up"
	case LaneRight:
		return "right"
	default:
		return fmt.Sprintf("lane(%d)", int(l))
	}
}

// IsStrong reports whether the lane belongs to the strong pair
// (left/right). The remaining pair (down/up) carries weak notes.
func (l Lane) IsStrong() bool {
	return l == LaneLeft || l == LaneRight
}

// Note is one chart entry: a point in time tagged with a lane.
type Note struct {
	Time float64
	Lane Lane
}

// Onset is a detected energy attack. Strength is the RMS envelope value at
// the detection frame, Salience the onset-curve value there.
type Onset struct {
	Time     float64
	Strength float64
	Salience float64
}

// Difficulty selects one of the built-in profiles.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a difficulty name to its Difficulty value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (expected easy, medium or hard)", s)
	}
}

// Profile bundles the tunables of one analysis run.
//
// Sensitivity scales the onset-picking threshold: a HIGHER sensitivity means
// a higher threshold and therefore FEWER detected onsets. The naming is
// inverted relative to common usage but the numeric relationship is load
// bearing for difficulty balance, so it stays.
type Profile struct {
	Name string

	// MinSeparation is the minimum time between two kept notes, in seconds.
	MinSeparation float64

	// Sensitivity multiplies the onset-curve standard deviation when forming
	// the detection threshold. Higher value, fewer onsets.
	Sensitivity float64

	// Subdivisions are the rhythmic grid steps as fractions of a beat.
	Subdivisions []float64

	// StrengthPercentile splits notes into the strong and weak lane pairs.
	StrengthPercentile float64
}

// Validate checks the profile for usable values.
func (p *Profile) Validate() error {
	if p.MinSeparation <= 0 {
		return fmt.Errorf("min separation must be > 0, got %g", p.MinSeparation)
	}
	if math.IsNaN(p.Sensitivity) || math.IsInf(p.Sensitivity, 0) {
		return fmt.Errorf("sensitivity must be finite")
	}
	if len(p.Subdivisions) == 0 {
		return fmt.Errorf("at least one grid subdivision required")
	}
	for i, s := range p.Subdivisions {
		if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
			return fmt.Errorf("subdivision[%d] must be > 0, got %g", i, s)
		}
	}
	if p.StrengthPercentile < 0 || p.StrengthPercentile > 1 {
		return fmt.Errorf("strength percentile must be in [0,1], got %g", p.StrengthPercentile)
	}
	return nil
}

// Profile returns the built-in profile for the difficulty.
func (d Difficulty) Profile() Profile {
	switch d {
	case DifficultyMedium:
		return Profile{
			Name:               "medium",
			MinSeparation:      0.20,
			Sensitivity:        1.0,
			Subdivisions:       []float64{1, 0.5, 0.25},
			StrengthPercentile: 0.6,
		}
	case DifficultyHard:
		return Profile{
			Name:               "hard",
			MinSeparation:      0.12,
			Sensitivity:        0.6,
			Subdivisions:       []float64{1, 0.5, 0.25, 0.125},
			StrengthPercentile: 0.6,
		}
	default:
		return Profile{
			Name:               "easy",
			MinSeparation:      0.30,
			Sensitivity:        1.5,
			Subdivisions:       []float64{1, 0.5},
			StrengthPercentile: 0.6,
		}
	}
}

// Analysis constants shared by the pipeline stages.
const (
	// windowSize and hopSize define the sliding RMS frames; 50% overlap.
	windowSize = 1024
	hopSize    = windowSize / 2

	// smoothingWidth is the centered moving-average width for the onset curve.
	smoothingWidth = 3

	// histogramBins is the fixed bin count of the inter-onset histogram.
	histogramBins = 20

	// Accepted tempo band after octave folding.
	minTempoBPM = 60.0
	maxTempoBPM = 200.0

	// Hard sanity bounds on the beat period, outside the tempo band.
	periodFloor = 0.1
	periodCeil  = 2.0

	// defaultBeatPeriod is the 120 BPM fallback when no tempo can be inferred.
	defaultBeatPeriod = 0.5

	// rescueSensitivity is the loose threshold multiplier for the
	// leading-onset rescue; rescueLead the required head start in seconds.
	rescueSensitivity = 0.1
	rescueLead        = 0.1
)
