package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-chart/chart"
	"github.com/cwbudde/mayfly"
)

type knobDef struct {
	Name string
	Min  float64
	Max  float64
}

// fitKnobs are the profile parameters the optimizer may move. Positions are
// normalized to [0,1] for mayfly and mapped back per knob.
var fitKnobs = []knobDef{
	{Name: "sensitivity", Min: 0.0, Max: 3.0},
	{Name: "min_separation", Min: 0.05, Max: 0.5},
}

func fromNormalized(pos []float64, defs []knobDef) []float64 {
	out := make([]float64, len(defs))
	for i, d := range defs {
		v := pos[i]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		out[i] = d.Min + v*(d.Max-d.Min)
	}
	return out
}

func applyKnobs(base chart.Profile, vals []float64) chart.Profile {
	p := base
	p.Subdivisions = append([]float64(nil), base.Subdivisions...)
	for i, d := range fitKnobs {
		switch d.Name {
		case "sensitivity":
			p.Sensitivity = vals[i]
		case "min_separation":
			p.MinSeparation = vals[i]
		}
	}
	return p
}

type fitConfig struct {
	samples       []float64
	sampleRate    int
	base          chart.Profile
	targetDensity float64 // notes per second
	seed          int64
	timeBudget    float64
	maxEvals      int
	variant       string
	pop           int
	roundEvals    int
}

type fitResult struct {
	profile chart.Profile
	score   float64
	density float64
	evals   int
	elapsed float64
}

// runFit searches sensitivity and minimum separation for the profile whose
// chart density comes closest to the target. The search runs repeated
// mayfly rounds with fresh seeds until the eval or time budget is spent.
func runFit(cfg *fitConfig) (*fitResult, error) {
	duration := float64(len(cfg.samples)) / float64(cfg.sampleRate)
	if duration <= 0 {
		return nil, fmt.Errorf("empty input")
	}

	evaluate := func(vals []float64) (float64, float64) {
		prof := applyKnobs(cfg.base, vals)
		res, err := chart.Analyze(cfg.samples, cfg.sampleRate, prof)
		if err != nil {
			return math.Inf(1), 0
		}
		density := float64(len(res.Notes)) / duration
		return math.Abs(density - cfg.targetDensity), density
	}

	start := time.Now()
	deadline := start.Add(time.Duration(cfg.timeBudget * float64(time.Second)))

	bestVals := fromNormalized([]float64{0.5, 0.5}, fitKnobs)
	bestScore, bestDensity := evaluate(bestVals)
	fmt.Printf("Start score=%.4f density=%.2f notes/s (target %.2f)\n", bestScore, bestDensity, cfg.targetDensity)

	evals := 1
	for round := 1; ; round++ {
		if time.Now().After(deadline) || evals >= cfg.maxEvals {
			break
		}
		remaining := cfg.maxEvals - evals
		budget := cfg.roundEvals
		if budget > remaining {
			budget = remaining
		}
		iters := budget / (2 * cfg.pop)
		if iters < 1 {
			iters = 1
		}

		mc, err := newMayflyConfig(cfg.variant, cfg.pop, len(fitKnobs), iters)
		if err != nil {
			return nil, err
		}
		mc.Rand = rand.New(rand.NewSource(cfg.seed + int64(round)*7919))
		mc.ObjectiveFunc = func(pos []float64) float64 {
			if time.Now().After(deadline) || evals >= cfg.maxEvals {
				return bestScore + 1.0
			}
			evals++
			vals := fromNormalized(pos, fitKnobs)
			score, density := evaluate(vals)
			if score < bestScore {
				bestScore = score
				bestDensity = density
				bestVals = vals
				fmt.Printf("Improved eval=%d score=%.4f density=%.2f sensitivity=%.3f min_separation=%.3f\n",
					evals, score, density, vals[0], vals[1])
			}
			return score
		}

		if _, err := runMayfly(mc); err != nil {
			fmt.Printf("mayfly round %d failed: %v\n", round, err)
		}
	}

	prof := applyKnobs(cfg.base, bestVals)
	prof.Name = cfg.base.Name
	return &fitResult{
		profile: prof,
		score:   bestScore,
		density: bestDensity,
		evals:   evals,
		elapsed: time.Since(start).Seconds(),
	}, nil
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	// Mayfly's implementation assumes NC/2 parent pairs are available from
	// both male and female populations.
	cfg.NC = 2 * pop
	// Keep at least one mutation to avoid stalling on small populations.
	nm := int(math.Round(0.05 * float64(pop)))
	if nm < 1 {
		nm = 1
	}
	cfg.NM = nm
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}
