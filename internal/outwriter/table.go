package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// Narrower terminals drop the statistics columns from the summary table.
const statsMinWidth = 100

// printTimelineTable prints a per-signal summary table, using the
// tablewriter API.
func printTimelineTable(t schema.Timeline, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)

	wide := terminalWidth(cfg) >= statsMinWidth

	// 1. Define Headers
	headers := []string{"Signal", "Unit", "Visible", "Samples", "Points"}
	if wide {
		headers = append(headers, "Min", "Max", "Mean")
	}
	headers = append(headers, "Last", "Range")
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	summaries := ComputeSummaries(t)
	var data [][]string
	for _, s := range summaries {
		def := schema.MustDefinition(s.Key)
		row := []string{
			string(s.Key),
			s.Unit,
			strconv.FormatBool(s.Visible),
			strconv.Itoa(s.Samples),
			strconv.Itoa(s.ControlPoints),
		}
		if wide {
			row = append(row,
				schema.FormatValue(s.Key, s.Min),
				schema.FormatValue(s.Key, s.Max),
				schema.FormatValue(s.Key, s.Mean),
			)
		}
		row = append(row,
			schema.FormatValue(s.Key, s.LastValue),
			rangeLabel(cfg, def, s.LastValue),
		)
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Timeline: %ds at %dms per sample (%d signals, clock start %s)\n",
		t.DurationSec, t.SampleRateMs, len(summaries),
		contract.FormatClock(cfg.ClockStartMin, 0))
	return nil
}

// PrintCatalog outputs the signal catalog, dispatching based on the output
// format configured. CSV and Parquet have no catalog form, so anything that
// is not JSON falls back to the table.
func PrintCatalog(cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, catalogEntries())
		}, "Wrote signal catalog")
	}
	return printCatalogTable(cfg)
}

// catalogEntry is one catalog row in JSON form.
type catalogEntry struct {
	Key      schema.SignalKey `json:"key"`
	Unit     string           `json:"unit"`
	Min      float64          `json:"min"`
	Max      float64          `json:"max"`
	Default  float64          `json:"default"`
	Step     float64          `json:"step"`
	SoftLow  *float64         `json:"softLow,omitempty"`
	SoftHigh *float64         `json:"softHigh,omitempty"`
}

func catalogEntries() []catalogEntry {
	entries := make([]catalogEntry, 0, len(schema.AllSignalKeys))
	for _, key := range schema.AllSignalKeys {
		def := schema.MustDefinition(key)
		e := catalogEntry{
			Key:     key,
			Unit:    def.Unit,
			Min:     def.Min,
			Max:     def.Max,
			Default: def.Default,
			Step:    def.Step,
		}
		if def.HasSoftBand {
			low, high := def.SoftLow, def.SoftHigh
			e.SoftLow, e.SoftHigh = &low, &high
		}
		entries = append(entries, e)
	}
	return entries
}

// printCatalogTable prints the full signal catalog with bounds and bands.
func printCatalogTable(cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Signal", "Unit", "Min", "Max", "Default", "Step", "Normal Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range catalogEntries() {
		band := contract.NoBandValue
		if e.SoftLow != nil {
			band = fmt.Sprintf("%s-%s",
				schema.FormatValue(e.Key, *e.SoftLow),
				schema.FormatValue(e.Key, *e.SoftHigh))
			if cfg.UseColors {
				band = contract.NormalColor.Sprint(band)
			}
		}
		data = append(data, []string{
			string(e.Key),
			e.Unit,
			schema.FormatValue(e.Key, e.Min),
			schema.FormatValue(e.Key, e.Max),
			schema.FormatValue(e.Key, e.Default),
			strconv.FormatFloat(e.Step, 'f', -1, 64),
			band,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Showing %d signals\n", len(data))
	return nil
}

// rangeLabel picks the colored or plain soft-band label per the color setting.
func rangeLabel(cfg *contract.Config, def schema.SignalDefinition, v float64) string {
	if cfg.UseColors {
		return contract.GetColorRangeLabel(def, v)
	}
	return contract.GetPlainRangeLabel(def, v)
}
