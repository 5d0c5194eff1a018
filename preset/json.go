package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chart/chart"
)

// File is the JSON schema for difficulty profile presets. Every field is a
// partial override applied on top of a built-in base difficulty.
type File struct {
	Base               string    `json:"base"`
	MinSeparation      *float64  `json:"min_separation"`
	Sensitivity        *float64  `json:"sensitivity"`
	Subdivisions       []float64 `json:"subdivisions"`
	StrengthPercentile *float64  `json:"strength_percentile"`
}

// LoadJSON loads a preset JSON file and applies it on top of its base
// difficulty's built-in profile.
func LoadJSON(path string) (chart.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return chart.Profile{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return chart.Profile{}, err
	}
	return Apply(&f)
}

// Apply resolves a parsed preset file into a full profile.
func Apply(f *File) (chart.Profile, error) {
	base := "medium"
	if f != nil && f.Base != "" {
		base = f.Base
	}
	d, err := chart.ParseDifficulty(base)
	if err != nil {
		return chart.Profile{}, fmt.Errorf("invalid base: %w", err)
	}
	p := d.Profile()
	if f == nil {
		return p, nil
	}

	if f.MinSeparation != nil {
		if *f.MinSeparation <= 0 {
			return chart.Profile{}, fmt.Errorf("min_separation must be > 0")
		}
		p.MinSeparation = *f.MinSeparation
	}
	if f.Sensitivity != nil {
		p.Sensitivity = *f.Sensitivity
	}
	if len(f.Subdivisions) > 0 {
		for i, s := range f.Subdivisions {
			if s <= 0 {
				return chart.Profile{}, fmt.Errorf("subdivisions[%d] must be > 0", i)
			}
		}
		p.Subdivisions = append([]float64(nil), f.Subdivisions...)
	}
	if f.StrengthPercentile != nil {
		if *f.StrengthPercentile < 0 || *f.StrengthPercentile > 1 {
			return chart.Profile{}, fmt.Errorf("strength_percentile must be in [0,1]")
		}
		p.StrengthPercentile = *f.StrengthPercentile
	}

	if err := p.Validate(); err != nil {
		return chart.Profile{}, err
	}
	return p, nil
}

// Save writes a profile as a standalone preset file so a fitted or hand
// tuned profile can be reused across runs.
func Save(path string, p chart.Profile) error {
	f := File{
		Base:               "medium",
		MinSeparation:      &p.MinSeparation,
		Sensitivity:        &p.Sensitivity,
		Subdivisions:       p.Subdivisions,
		StrengthPercentile: &p.StrengthPercentile,
	}
	if _, err := chart.ParseDifficulty(p.Name); err == nil {
		f.Base = p.Name
	}
	b, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
