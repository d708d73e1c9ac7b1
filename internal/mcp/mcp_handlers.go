package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/csvcodec"
	"github.com/openvitals/vitaline/internal/outwriter"
	"github.com/openvitals/vitaline/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   *core.Store
}

// timelineState is the JSON shape returned after every mutation, so the
// client always sees the state it just produced.
type timelineState struct {
	DurationSec  int                       `json:"durationSec"`
	SampleRateMs int64                     `json:"sampleRateMs"`
	Signals      []timelineSignal          `json:"signals"`
	Summaries    []outwriter.SignalSummary `json:"summaries"`
}

type timelineSignal struct {
	Key           schema.SignalKey `json:"key"`
	Visible       bool             `json:"visible"`
	ControlPoints []controlPoint   `json:"controlPoints"`
}

type controlPoint struct {
	Index  int     `json:"index"`
	Time   string  `json:"time"`
	TimeMs int64   `json:"timeMs"`
	Value  float64 `json:"value"`
}

func (h *toolHandler) stateResult() (*mcp.CallToolResult, error) {
	t := h.store.Snapshot()
	state := timelineState{
		DurationSec:  t.DurationSec,
		SampleRateMs: t.SampleRateMs,
		Summaries:    outwriter.ComputeSummaries(t),
	}
	for _, s := range state.Summaries {
		sig := t.Signals[s.Key]
		ts := timelineSignal{
			Key:           s.Key,
			Visible:       sig.Visible,
			ControlPoints: make([]controlPoint, 0, len(sig.ControlPoints)),
		}
		for i, p := range sig.ControlPoints {
			ts.ControlPoints = append(ts.ControlPoints, controlPoint{
				Index:  i,
				Time:   contract.FormatTimeMs(p.TimeMs),
				TimeMs: p.TimeMs,
				Value:  p.Value,
			})
		}
		state.Signals = append(state.Signals, ts)
	}

	jsonData, _ := json.MarshalIndent(state, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNewTimeline(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration := request.GetInt("duration", contract.DefaultDurationSec)
	rate := int64(request.GetInt("sample_rate", int(contract.DefaultSampleRateMs)))

	keys := h.baseCfg.Keys
	if list := request.GetString("signals", ""); list != "" {
		parsed, err := contract.ParseSignalList(list)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid signal list: %v", err)), nil
		}
		keys = parsed
	}
	if len(keys) == 0 {
		keys = schema.DefaultScenarioKeys
	}

	t, err := core.SelectSignals(core.NewTimeline(duration, rate), keys)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeline construction failed: %v", err)), nil
	}
	h.store.Replace(t)
	return h.stateResult()
}

func (h *toolHandler) handleGetTimeline(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.stateResult()
}

func (h *toolHandler) handleAddControlPoint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, timeMs, value, err := pointArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.store.AddControlPoint(key, schema.DataPoint{TimeMs: timeMs, Value: value}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleMoveControlPoint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, timeMs, value, err := pointArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := request.GetInt("index", -1)
	if err := h.store.MoveControlPoint(key, index, schema.DataPoint{TimeMs: timeMs, Value: value}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("move failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleDeleteControlPoint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := signalArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := request.GetInt("index", -1)
	if err := h.store.DeleteControlPoint(key, index); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleSetDuration(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration := request.GetInt("duration", 0)
	if duration < 1 {
		return mcp.NewToolResultError("duration must be at least 1 second"), nil
	}
	if err := h.store.SetDuration(duration); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resize failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleSetSampleRate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rate := request.GetInt("sample_rate", 0)
	if rate < 1 {
		return mcp.NewToolResultError("sample_rate must be at least 1 millisecond"), nil
	}
	if err := h.store.SetSampleRate(int64(rate)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resample failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleToggleVisibility(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := signalArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.store.ToggleVisibility(key); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("toggle failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleResetSignal(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := signalArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.store.ResetSignal(key); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleExportCSV(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var columns []string
	if list := request.GetString("columns", ""); list != "" {
		for _, c := range strings.Split(list, ",") {
			if c = strings.TrimSpace(c); c != "" {
				columns = append(columns, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := csvcodec.WriteCSV(&buf, h.store.Snapshot(), columns, h.baseCfg.ClockStartMin); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleImportCSV(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := request.GetString("csv", "")
	if content == "" {
		return mcp.NewToolResultError("csv content is required"), nil
	}
	t, err := csvcodec.Import(strings.NewReader(content))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	h.store.Replace(t)
	return h.stateResult()
}

func (h *toolHandler) handleGetSignalCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type entry struct {
		Key     schema.SignalKey `json:"key"`
		Unit    string           `json:"unit"`
		Min     float64          `json:"min"`
		Max     float64          `json:"max"`
		Default float64          `json:"default"`
		Step    float64          `json:"step"`
		Band    string           `json:"band"`
	}
	entries := make([]entry, 0, len(schema.AllSignalKeys))
	for _, key := range schema.AllSignalKeys {
		def := schema.MustDefinition(key)
		band := contract.NoBandValue
		if def.HasSoftBand {
			band = fmt.Sprintf("%s-%s",
				schema.FormatValue(key, def.SoftLow),
				schema.FormatValue(key, def.SoftHigh))
		}
		entries = append(entries, entry{
			Key:     key,
			Unit:    def.Unit,
			Min:     def.Min,
			Max:     def.Max,
			Default: def.Default,
			Step:    def.Step,
			Band:    band,
		})
	}
	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleUndo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.store.Undo() {
		return mcp.NewToolResultError("nothing to undo"), nil
	}
	return h.stateResult()
}

func (h *toolHandler) handleRedo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.store.Redo() {
		return mcp.NewToolResultError("nothing to redo"), nil
	}
	return h.stateResult()
}

// signalArg resolves the required signal parameter against the catalog.
func signalArg(request mcp.CallToolRequest) (schema.SignalKey, error) {
	raw := request.GetString("signal", "")
	key, ok := schema.MatchSignalKey(raw)
	if !ok {
		return "", fmt.Errorf("unknown signal %q", raw)
	}
	return key, nil
}

// pointArgs resolves the signal, time, and value parameters shared by the
// control point tools.
func pointArgs(request mcp.CallToolRequest) (schema.SignalKey, int64, float64, error) {
	key, err := signalArg(request)
	if err != nil {
		return "", 0, 0, err
	}
	timeMs, err := contract.ParseTimeCell(request.GetString("time", ""))
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid time: %v", err)
	}
	value := request.GetFloat("value", 0)
	return key, timeMs, value, nil
}
