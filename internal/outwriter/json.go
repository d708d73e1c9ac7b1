package outwriter

import (
	"io"
	"sort"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// timelineDoc is the JSON envelope for a full timeline export.
type timelineDoc struct {
	DurationSec  int             `json:"durationSec"`
	SampleRateMs int64           `json:"sampleRateMs"`
	ClockStart   string          `json:"clockStart"`
	Signals      []signalDoc     `json:"signals"`
	Summaries    []SignalSummary `json:"summaries"`
}

type signalDoc struct {
	Key           schema.SignalKey `json:"key"`
	Unit          string           `json:"unit"`
	Visible       bool             `json:"visible"`
	Order         int              `json:"order"`
	ControlPoints []pointDoc       `json:"controlPoints"`
	Data          []sampleDoc      `json:"data"`
	Zoom          *schema.Zoom     `json:"zoom,omitempty"`
}

type pointDoc struct {
	Time   string  `json:"time"`
	TimeMs int64   `json:"timeMs"`
	Value  float64 `json:"value"`
}

type sampleDoc struct {
	TimeMs       int64   `json:"timeMs"`
	Clock        string  `json:"clock"`
	Value        float64 `json:"value"`
	UserModified bool    `json:"userModified,omitempty"`
}

// printJSONTimeline writes the timeline as an indented JSON document, with
// signals ordered by stacking order.
func printJSONTimeline(t schema.Timeline, cfg *contract.Config) error {
	keys := make([]schema.SignalKey, 0, len(t.Signals))
	for key := range t.Signals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return t.Signals[keys[i]].Order < t.Signals[keys[j]].Order
	})

	doc := timelineDoc{
		DurationSec:  t.DurationSec,
		SampleRateMs: t.SampleRateMs,
		ClockStart:   contract.FormatClock(cfg.ClockStartMin, 0),
		Summaries:    ComputeSummaries(t),
	}
	for _, key := range keys {
		state := t.Signals[key]
		def := schema.MustDefinition(key)
		sd := signalDoc{
			Key:           key,
			Unit:          def.Unit,
			Visible:       state.Visible,
			Order:         state.Order,
			ControlPoints: make([]pointDoc, 0, len(state.ControlPoints)),
			Data:          make([]sampleDoc, 0, len(state.Data)),
			Zoom:          state.Zoom,
		}
		for _, p := range state.ControlPoints {
			sd.ControlPoints = append(sd.ControlPoints, pointDoc{
				Time:   contract.FormatTimeMs(p.TimeMs),
				TimeMs: p.TimeMs,
				Value:  p.Value,
			})
		}
		for _, p := range state.Data {
			sd.Data = append(sd.Data, sampleDoc{
				TimeMs:       p.TimeMs,
				Clock:        contract.FormatClock(cfg.ClockStartMin, p.TimeMs),
				Value:        p.Value,
				UserModified: p.UserModified,
			})
		}
		doc.Signals = append(doc.Signals, sd)
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, doc)
	}, "Wrote JSON timeline")
}
