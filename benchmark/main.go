// Package main provides a performance benchmarking tool for the vitaline
// engine. It measures interpolation, resampling, and cascade times across
// different grid sizes, running each case multiple times, treating the first
// run as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Usage: go run benchmark/main.go [output.csv]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/schema"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Case     string
	Grid     string
	ColdTime string
	WarmTime string
}

// benchCase is one engine operation applied to a prepared timeline.
type benchCase struct {
	name string
	run  func(schema.Timeline) schema.Timeline
}

const warmRuns = 4

func main() {
	outputPath := "benchmark_results.csv"
	if len(os.Args) == 2 {
		outputPath = os.Args[1]
	}

	// Grid sizes: 30 minutes at 1Hz up to 8 hours at 1Hz
	durations := []int{1800, 7200, 28800}

	cases := []benchCase{
		{"regenerate", func(t schema.Timeline) schema.Timeline {
			out, err := core.AddControlPoint(t, schema.SignalHR, schema.DataPoint{
				TimeMs: int64(t.DurationSec) * 500, Value: 90,
			})
			if err != nil {
				panic(err)
			}
			return out
		}},
		{"resample_rate", func(t schema.Timeline) schema.Timeline {
			return core.SetSampleRate(t, 2000)
		}},
		{"extend_cascade", func(t schema.Timeline) schema.Timeline {
			return core.SetDuration(t, t.DurationSec*2)
		}},
	}

	var results []BenchmarkResult
	for _, durationSec := range durations {
		base := buildBase(durationSec)
		for _, c := range cases {
			cold, warm := timeCase(c, base)
			results = append(results, BenchmarkResult{
				Case:     c.name,
				Grid:     fmt.Sprintf("%ds@1000ms", durationSec),
				ColdTime: cold.String(),
				WarmTime: warm.String(),
			})
			fmt.Printf("✅ %s %ds: cold=%v warm=%v\n", c.name, durationSec, cold, warm)
		}
	}

	if err := writeResults(outputPath, results); err != nil {
		fmt.Printf("❌ Failed to write results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("💾 Wrote %d results to %s\n", len(results), outputPath)
}

// buildBase constructs a timeline with a few edits so the cascade and
// resample paths have user-modified samples to work with.
func buildBase(durationSec int) schema.Timeline {
	t, err := core.SelectSignals(core.NewTimeline(durationSec, 1000), schema.DefaultScenarioKeys)
	if err != nil {
		panic(err)
	}
	t, err = core.AddControlPoint(t, schema.SignalHR, schema.DataPoint{
		TimeMs: int64(durationSec) * 250, Value: 95,
	})
	if err != nil {
		panic(err)
	}
	return t
}

// timeCase runs one case repeatedly against the same input snapshot.
func timeCase(c benchCase, base schema.Timeline) (cold, warm time.Duration) {
	start := time.Now()
	_ = c.run(base.Clone())
	cold = time.Since(start)

	var total time.Duration
	for range warmRuns {
		in := base.Clone()
		start = time.Now()
		_ = c.run(in)
		total += time.Since(start)
	}
	warm = total / warmRuns
	return cold, warm
}

func writeResults(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"Case", "Grid", "ColdTime", "WarmTime"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Case, r.Grid, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}
	return w.Error()
}
