package mcp_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	mcp_internal "github.com/openvitals/vitaline/internal/mcp"
	"github.com/openvitals/vitaline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*server.MCPServer, *core.Store) {
	t.Helper()
	tl, err := core.SelectSignals(core.NewTimeline(60, 1000),
		[]schema.SignalKey{schema.SignalHR, schema.SignalSpO2})
	require.NoError(t, err)

	store := core.NewStore(tl)
	baseCfg := &contract.Config{ClockStartMin: 7 * 60}
	return mcp_internal.NewMCPServer(baseCfg, store), store
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerAddControlPoint(t *testing.T) {
	s, store := newTestServer(t)

	res := callTool(t, s, "add_control_point", map[string]any{
		"signal": "HR",
		"time":   "00:00:30_000",
		"value":  95.0,
	})
	require.False(t, res.IsError, resultText(t, res))

	var state struct {
		Signals []struct {
			Key           schema.SignalKey `json:"key"`
			ControlPoints []struct {
				TimeMs int64   `json:"timeMs"`
				Value  float64 `json:"value"`
			} `json:"controlPoints"`
		} `json:"signals"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &state))
	require.Len(t, state.Signals, 2)
	require.Len(t, state.Signals[0].ControlPoints, 1)
	assert.Equal(t, int64(30000), state.Signals[0].ControlPoints[0].TimeMs)
	assert.Equal(t, 95.0, state.Signals[0].ControlPoints[0].Value)

	// The store saw the same mutation
	snap := store.Snapshot()
	assert.Equal(t, 95.0, snap.Signals[schema.SignalHR].Data[30].Value)
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("add_control_point unknown signal", func(t *testing.T) {
		res := callTool(t, s, "add_control_point", map[string]any{
			"signal": "XYZ",
			"time":   "0",
			"value":  1.0,
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "unknown signal")
	})

	t.Run("add_control_point bad time", func(t *testing.T) {
		res := callTool(t, s, "add_control_point", map[string]any{
			"signal": "HR",
			"time":   "not-a-time",
			"value":  1.0,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid time")
	})

	t.Run("set_duration zero", func(t *testing.T) {
		res := callTool(t, s, "set_duration", map[string]any{"duration": 0.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "at least 1 second")
	})

	t.Run("delete_control_point bad index", func(t *testing.T) {
		res := callTool(t, s, "delete_control_point", map[string]any{
			"signal": "HR",
			"index":  5.0,
		})
		assert.True(t, res.IsError)
	})

	t.Run("undo empty history", func(t *testing.T) {
		res := callTool(t, s, "undo", nil)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "nothing to undo")
	})
}

func TestMCPServerCSVRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)

	exported := callTool(t, s, "export_csv", nil)
	require.False(t, exported.IsError)
	csvText := resultText(t, exported)
	assert.True(t, strings.HasPrefix(csvText, "Time,RelativeTimeMilliseconds,Clock,HR,SpO2"))

	imported := callTool(t, s, "import_csv", map[string]any{"csv": csvText})
	require.False(t, imported.IsError, resultText(t, imported))

	var state struct {
		DurationSec  int   `json:"durationSec"`
		SampleRateMs int64 `json:"sampleRateMs"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, imported)), &state))
	assert.Equal(t, 60, state.DurationSec)
	assert.Equal(t, int64(1000), state.SampleRateMs)
}

func TestMCPServerNewTimelineDefaults(t *testing.T) {
	s, store := newTestServer(t)

	res := callTool(t, s, "new_timeline", map[string]any{"duration": 120.0})
	require.False(t, res.IsError, resultText(t, res))

	snap := store.Snapshot()
	assert.Equal(t, 120, snap.DurationSec)
	assert.Equal(t, int64(1000), snap.SampleRateMs)
	// No signal list means the standard scenario selection
	for _, key := range schema.DefaultScenarioKeys {
		assert.Contains(t, snap.Signals, key)
	}
}

func TestMCPServerUndoRedo(t *testing.T) {
	s, store := newTestServer(t)

	res := callTool(t, s, "set_duration", map[string]any{"duration": 90.0})
	require.False(t, res.IsError)
	assert.Equal(t, 90, store.Snapshot().DurationSec)

	res = callTool(t, s, "undo", nil)
	require.False(t, res.IsError)
	assert.Equal(t, 60, store.Snapshot().DurationSec)

	res = callTool(t, s, "redo", nil)
	require.False(t, res.IsError)
	assert.Equal(t, 90, store.Snapshot().DurationSec)
}
