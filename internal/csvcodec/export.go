package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// DefaultColumns returns the standard export header: the reserved time
// columns followed by every selected signal in stacking order, hidden ones
// included so a round trip preserves the full selection.
func DefaultColumns(t schema.Timeline) []string {
	keys := make([]schema.SignalKey, 0, len(t.Signals))
	for key := range t.Signals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return t.Signals[keys[i]].Order < t.Signals[keys[j]].Order
	})

	columns := make([]string, 0, len(schema.ReservedColumns)+len(keys))
	columns = append(columns, schema.ReservedColumns...)
	for _, key := range keys {
		columns = append(columns, string(key))
	}
	return columns
}

// ExportRows renders one row per grid timestamp for the requested columns.
// Signal cells are filled only when the signal is visible and a sample
// exists at that exact timestamp; otherwise the cell stays empty. Values
// are clamped again on the way out and formatted per the signal's
// precision family.
func ExportRows(t schema.Timeline, columns []string, clockStartMin int) [][]string {
	times := core.GridTimes(t.DurationSec, t.SampleRateMs)
	rows := make([][]string, len(times))
	for i, timeMs := range times {
		row := make([]string, len(columns))
		for c, column := range columns {
			row[c] = renderCell(t, column, timeMs, i, clockStartMin)
		}
		rows[i] = row
	}
	return rows
}

// renderCell produces one cell for the given column at a grid timestamp.
func renderCell(t schema.Timeline, column string, timeMs int64, index int, clockStartMin int) string {
	switch {
	case strings.EqualFold(column, schema.ColumnTime):
		return contract.FormatTimeMs(timeMs)
	case strings.EqualFold(column, schema.ColumnRelativeMs):
		return strconv.FormatInt(timeMs, 10)
	case strings.EqualFold(column, schema.ColumnClock):
		return contract.FormatClock(clockStartMin, timeMs)
	}

	key, ok := schema.MatchSignalKey(column)
	if !ok {
		return ""
	}
	state, ok := t.Signals[key]
	if !ok || !state.Visible {
		return ""
	}
	if index >= len(state.Data) || state.Data[index].TimeMs != timeMs {
		return ""
	}
	def := schema.MustDefinition(key)
	return schema.FormatValue(key, def.Clamp(state.Data[index].Value))
}

// WriteCSV writes the header and all rows through encoding/csv, which
// provides the RFC4180 quoting rules for embedded commas, quotes and
// newlines.
func WriteCSV(w io.Writer, t schema.Timeline, columns []string, clockStartMin int) error {
	if len(columns) == 0 {
		columns = DefaultColumns(t)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range ExportRows(t, columns, clockStartMin) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
