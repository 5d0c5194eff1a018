package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chart/chart"
	"github.com/cwbudde/algo-chart/internal/audiofile"
	"github.com/cwbudde/algo-chart/preset"
	"github.com/cwbudde/algo-chart/preview"
)

type chartFile struct {
	Source     string     `json:"source"`
	SampleRate int        `json:"sample_rate"`
	Difficulty string     `json:"difficulty"`
	BPM        float64    `json:"bpm"`
	Notes      []noteJSON `json:"notes"`
}

type noteJSON struct {
	Time float64 `json:"time"`
	Lane string  `json:"lane"`
}

func main() {
	input := flag.String("input", "", "Input audio file (.wav or .mp3)")
	difficulty := flag.String("difficulty", "medium", "Difficulty: easy, medium or hard")
	presetPath := flag.String("preset", "", "Difficulty preset JSON overriding -difficulty (optional)")
	output := flag.String("output", "chart.json", "Output chart JSON path")
	previewPath := flag.String("preview", "", "Also render a click-track preview WAV to this path (optional)")
	previewMix := flag.Bool("preview-mix", true, "Mix the source audio under the preview clicks")
	analysisRate := flag.Int("resample", 0, "Resample to this rate before analysis (0 = keep file rate)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: chart-gen -input song.wav [-difficulty hard] [-output chart.json]")
		os.Exit(1)
	}

	samples, rate, err := audiofile.ReadMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}
	if *analysisRate > 0 && *analysisRate != rate {
		samples, err = audiofile.ResampleIfNeeded(samples, rate, *analysisRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling to %d Hz: %v\n", *analysisRate, err)
			os.Exit(1)
		}
		rate = *analysisRate
	}

	var prof chart.Profile
	if *presetPath != "" {
		prof, err = preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
	} else {
		d, err := chart.ParseDifficulty(*difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		prof = d.Profile()
	}

	res, err := chart.Analyze(samples, rate, prof)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzed %s: %.1fs @ %d Hz, %d onsets, %.1f BPM, %d notes (%s)\n",
		*input, float64(len(samples))/float64(rate), rate,
		len(res.Onsets), res.BPM(), len(res.Notes), prof.Name)

	out := chartFile{
		Source:     *input,
		SampleRate: rate,
		Difficulty: prof.Name,
		BPM:        res.BPM(),
		Notes:      make([]noteJSON, len(res.Notes)),
	}
	for i, n := range res.Notes {
		out.Notes[i] = noteJSON{Time: n.Time, Lane: n.Lane.String()}
	}
	b, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding chart: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, append(b, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d notes)\n", *output, len(out.Notes))

	if *previewPath != "" {
		cfg := preview.DefaultConfig()
		cfg.SampleRate = rate
		if cfg.LowpassHz >= float64(rate)/2 {
			cfg.LowpassHz = 0
		}
		if *previewMix {
			cfg.Source = samples
		}
		clicks, err := preview.Render(res.Notes, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering preview: %v\n", err)
			os.Exit(1)
		}
		if err := audiofile.WriteMonoWAV(*previewPath, clicks, rate); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview %q: %v\n", *previewPath, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote preview %s (%.1fs)\n", *previewPath, float64(len(clicks))/float64(rate))
	}
}
