// Package outwriter has output and writer logic for timelines and the
// signal catalog.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/csvcodec"
	"github.com/openvitals/vitaline/internal/parquet"
	"github.com/openvitals/vitaline/schema"
	"golang.org/x/term"
)

// PrintTimeline outputs the timeline, dispatching based on the output
// format configured.
func PrintTimeline(t schema.Timeline, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONTimeline(t, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVTimeline(t, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetTimeline(t, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := printTimelineTable(t, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printCSVTimeline handles opening the file and calling the CSV writer.
func printCSVTimeline(t schema.Timeline, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return csvcodec.WriteCSV(w, t, cfg.Columns, cfg.ClockStartMin)
	}, "Wrote CSV timeline")
}

// printParquetTimeline flattens the timeline and writes a Parquet file.
// Parquet is a binary format, so stdout is not an option.
func printParquetTimeline(t schema.Timeline, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.FlattenTimeline(t, cfg.ClockStartMin)
	if err := parquet.WriteSamplesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d Parquet rows to %s\n", len(rows), cfg.OutputFile)
	return nil
}

// terminalWidth resolves the usable output width: the configured override
// wins, then the detected terminal size, then a conservative default for
// narrow terminals and CI.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}
