package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// MinSampleRateMs floors the inferred sample rate. Sparser tables still
// import; denser ones are snapped up to one sample per second.
const MinSampleRateMs = 1000

// Import parses a delimited table into a fresh timeline. Imported samples
// become the new baseline: they carry no user-modified flags and therefore
// never drive cascading on later duration increases. Any validation failure
// returns before a timeline is built, so callers can keep prior state.
func Import(r io.Reader) (schema.Timeline, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return schema.Timeline{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		return schema.Timeline{}, ErrNoRows
	}

	header := records[0]
	timeCol := detectTimeColumn(header)
	if timeCol < 0 {
		return schema.Timeline{}, fmt.Errorf("%w: header is %q", ErrNoTimeColumn, strings.Join(header, ","))
	}

	signalCols := matchSignalColumns(header, timeCol)
	if len(signalCols) == 0 {
		return schema.Timeline{}, fmt.Errorf("%w: header is %q", ErrNoSignalColumns, strings.Join(header, ","))
	}

	rows := parseRows(records[1:], timeCol)
	if len(rows) == 0 {
		return schema.Timeline{}, ErrNoRows
	}

	minTime, maxTime := rows[0].timeMs, rows[len(rows)-1].timeMs
	durationSec := int(math.Ceil(float64(maxTime-minTime) / 1000.0))
	sampleRateMs := inferSampleRate(rows)

	tl := core.NewTimeline(durationSec, sampleRateMs)
	for order, sc := range signalCols {
		def := schema.MustDefinition(sc.key)
		raw := collectSamples(rows, sc.col, def, minTime)
		tl.Signals[sc.key] = &schema.SignalState{
			Data:    core.ResampleToGrid(raw, def, durationSec, sampleRateMs),
			Visible: true,
			Order:   order,
		}
	}
	return tl, nil
}

// signalColumn pairs a matched catalog key with its column index.
type signalColumn struct {
	key schema.SignalKey
	col int
}

// importRow is one parsed data row keyed by its time offset.
type importRow struct {
	timeMs int64
	cells  []string
}

// detectTimeColumn returns the index of the first time-like header, or -1.
// A header matches when it equals "time" or mentions "milliseconds",
// case-insensitively, which covers both reserved time columns.
func detectTimeColumn(header []string) int {
	for i, h := range header {
		trimmed := strings.TrimSpace(h)
		if strings.EqualFold(trimmed, "time") {
			return i
		}
		if strings.Contains(strings.ToLower(trimmed), "milliseconds") {
			return i
		}
	}
	return -1
}

// matchSignalColumns resolves non-time headers against the catalog in
// column order. Unmatched columns are ignored.
func matchSignalColumns(header []string, timeCol int) []signalColumn {
	var cols []signalColumn
	seen := make(map[schema.SignalKey]struct{})
	for i, h := range header {
		if i == timeCol {
			continue
		}
		key, ok := schema.MatchSignalKey(h)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cols = append(cols, signalColumn{key: key, col: i})
	}
	return cols
}

// parseRows extracts rows with a parseable time cell, sorted by time.
// Rows whose time cell fails to parse are dropped, not reported.
func parseRows(records [][]string, timeCol int) []importRow {
	var rows []importRow
	for _, record := range records {
		if timeCol >= len(record) {
			continue
		}
		timeMs, err := contract.ParseTimeCell(record[timeCol])
		if err != nil {
			continue
		}
		rows = append(rows, importRow{timeMs: timeMs, cells: record})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].timeMs < rows[j].timeMs })
	return rows
}

// inferSampleRate derives the grid spacing as the rounded mean spacing
// between consecutive rows, floored at MinSampleRateMs.
func inferSampleRate(rows []importRow) int64 {
	if len(rows) < 2 {
		return MinSampleRateMs
	}
	var total int64
	for i := 1; i < len(rows); i++ {
		total += rows[i].timeMs - rows[i-1].timeMs
	}
	mean := float64(total) / float64(len(rows)-1)
	rate := int64(math.Round(mean))
	if rate < MinSampleRateMs {
		return MinSampleRateMs
	}
	return rate
}

// collectSamples reads one signal's column across all rows, clamping values
// and normalizing timestamps so the earliest row sits at offset zero. Cells
// that are empty or fail to parse yield no sample. A later row at the same
// offset wins.
func collectSamples(rows []importRow, col int, def schema.SignalDefinition, minTime int64) []schema.DataPoint {
	byTime := make(map[int64]schema.DataPoint)
	for _, row := range rows {
		if col >= len(row.cells) {
			continue
		}
		cell := strings.TrimSpace(row.cells[col])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		offset := row.timeMs - minTime
		byTime[offset] = schema.DataPoint{TimeMs: offset, Value: def.Clamp(v)}
	}

	samples := make([]schema.DataPoint, 0, len(byTime))
	for _, p := range byTime {
		samples = append(samples, p)
	}
	return schema.SortPoints(samples)
}
