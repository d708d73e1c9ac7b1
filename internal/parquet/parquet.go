// Package parquet exports timeline samples to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
	"github.com/parquet-go/parquet-go"
)

// SampleRow is one exported sample in long format: one row per
// (signal, grid timestamp) pair.
type SampleRow struct {
	// Signal is the catalog key, e.g. "HR"
	Signal string `parquet:"signal,snappy"`

	// Unit is the signal's display unit
	Unit string `parquet:"unit,snappy"`

	// TimeMs is the grid timestamp in milliseconds from timeline start
	TimeMs int64 `parquet:"time_ms,snappy"`

	// Clock is the wall-clock rendering of the timestamp
	Clock string `parquet:"clock,snappy"`

	// Value is the sample value, clamped to the signal's bounds
	Value float64 `parquet:"value,snappy"`

	// UserModified marks samples stemming from deliberate user edits
	UserModified bool `parquet:"user_modified,snappy"`
}

// FlattenTimeline converts the visible signals of a timeline into long-format
// rows, ordered by stacking order then timestamp.
func FlattenTimeline(t schema.Timeline, clockStartMin int) []SampleRow {
	keys := make([]schema.SignalKey, 0, len(t.Signals))
	for key, state := range t.Signals {
		if state.Visible {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return t.Signals[keys[i]].Order < t.Signals[keys[j]].Order
	})

	var rows []SampleRow
	for _, key := range keys {
		def := schema.MustDefinition(key)
		for _, p := range t.Signals[key].Data {
			rows = append(rows, SampleRow{
				Signal:       string(key),
				Unit:         def.Unit,
				TimeMs:       p.TimeMs,
				Clock:        contract.FormatClock(clockStartMin, p.TimeMs),
				Value:        def.Clamp(p.Value),
				UserModified: p.UserModified,
			})
		}
	}
	return rows
}

// WriteSamplesParquet writes sample rows to a Parquet file.
func WriteSamplesParquet(data []SampleRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the SampleRow struct tags
	writer := parquet.NewGenericWriter[SampleRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
