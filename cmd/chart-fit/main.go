package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chart/chart"
	"github.com/cwbudde/algo-chart/internal/audiofile"
	"github.com/cwbudde/algo-chart/preset"
)

func main() {
	input := flag.String("input", "", "Input audio file (.wav or .mp3)")
	target := flag.Float64("target", 2.0, "Target note density in notes per second")
	difficulty := flag.String("difficulty", "medium", "Base difficulty for grid subdivisions and percentile")
	output := flag.String("output", "fitted.json", "Output preset JSON path")
	timeBudget := flag.Float64("time-budget", 30.0, "Optimization time budget in seconds")
	maxEvals := flag.Int("max-evals", 400, "Maximum number of profile evaluations")
	seed := flag.Int64("seed", 1, "Random seed")
	variant := flag.String("variant", "ma", "Mayfly variant: ma, desma, olce, eobbma, gsasma, mpma, aoblmoa")
	pop := flag.Int("pop", 8, "Mayfly population size")
	roundEvals := flag.Int("round-evals", 80, "Evaluations per mayfly round")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: chart-fit -input song.wav -target 2.5 [-output fitted.json]")
		os.Exit(1)
	}
	if *target <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -target must be > 0")
		os.Exit(1)
	}

	samples, rate, err := audiofile.ReadMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}

	d, err := chart.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fitting %s (%.1fs @ %d Hz) toward %.2f notes/s, base %s\n",
		*input, float64(len(samples))/float64(rate), rate, *target, d)

	res, err := runFit(&fitConfig{
		samples:       samples,
		sampleRate:    rate,
		base:          d.Profile(),
		targetDensity: *target,
		seed:          *seed,
		timeBudget:    *timeBudget,
		maxEvals:      *maxEvals,
		variant:       *variant,
		pop:           *pop,
		roundEvals:    *roundEvals,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fit failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done after %d evals (%.1fs): density %.2f notes/s, sensitivity %.3f, min separation %.3f\n",
		res.evals, res.elapsed, res.density, res.profile.Sensitivity, res.profile.MinSeparation)

	if err := preset.Save(*output, res.profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}
