// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// NewMCPServer initializes and configures the Vitaline MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store *core.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Vitaline Timeline Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	signals := signalEnum()

	// --- 1. Tool: new_timeline ---
	s.AddTool(mcp.NewTool("new_timeline",
		mcp.WithDescription("Start a fresh timeline with baseline data for the selected signals."),
		mcp.WithNumber("duration", mcp.Description("Timeline duration in seconds. Defaults to 1800.")),
		mcp.WithNumber("sample_rate", mcp.Description("Grid spacing in milliseconds. Defaults to 1000.")),
		mcp.WithString("signals", mcp.Description("Comma-separated signal keys (e.g. 'HR,SpO2,RR'). Defaults to the standard scenario set.")),
	), h.handleNewTimeline)

	// --- 2. Tool: get_timeline ---
	s.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("Return the current timeline state with per-signal statistics and control points."),
	), h.handleGetTimeline)

	// --- 3. Tool: add_control_point ---
	s.AddTool(mcp.NewTool("add_control_point",
		mcp.WithDescription("Add a control point to a signal. The dense curve is regenerated by linear interpolation."),
		mcp.WithString("signal", mcp.Description("Signal key."), mcp.Required(), mcp.Enum(signals...)),
		mcp.WithString("time", mcp.Description("Timestamp as HH:MM:SS_mmm, MM:SS, or bare milliseconds."), mcp.Required()),
		mcp.WithNumber("value", mcp.Description("Value at the control point, clamped to the signal's bounds."), mcp.Required()),
	), h.handleAddControlPoint)

	// --- 4. Tool: move_control_point ---
	s.AddTool(mcp.NewTool("move_control_point",
		mcp.WithDescription("Move an existing control point to a new time and value."),
		mcp.WithString("signal", mcp.Description("Signal key."), mcp.Required(), mcp.Enum(signals...)),
		mcp.WithNumber("index", mcp.Description("Index of the control point in time order."), mcp.Required()),
		mcp.WithString("time", mcp.Description("New timestamp."), mcp.Required()),
		mcp.WithNumber("value", mcp.Description("New value."), mcp.Required()),
	), h.handleMoveControlPoint)

	// --- 5. Tool: delete_control_point ---
	s.AddTool(mcp.NewTool("delete_control_point",
		mcp.WithDescription("Delete a control point from a signal."),
		mcp.WithString("signal", mcp.Description("Signal key."), mcp.Required(), mcp.Enum(signals...)),
		mcp.WithNumber("index", mcp.Description("Index of the control point in time order."), mcp.Required()),
	), h.handleDeleteControlPoint)

	// --- 6. Tool: set_duration ---
	s.AddTool(mcp.NewTool("set_duration",
		mcp.WithDescription("Resize the timeline. Extensions carry the most recent edit forward as an offset."),
		mcp.WithNumber("duration", mcp.Description("New duration in seconds."), mcp.Required()),
	), h.handleSetDuration)

	// --- 7. Tool: set_sample_rate ---
	s.AddTool(mcp.NewTool("set_sample_rate",
		mcp.WithDescription("Change the grid spacing, resampling all signals onto the new grid."),
		mcp.WithNumber("sample_rate", mcp.Description("New grid spacing in milliseconds."), mcp.Required()),
	), h.handleSetSampleRate)

	// --- 8. Tool: toggle_visibility ---
	s.AddTool(mcp.NewTool("toggle_visibility",
		mcp.WithDescription("Flip a signal between visible and hidden. Hidden signals keep their data."),
		mcp.WithString("signal", mcp.Description("Signal key."), mcp.Required(), mcp.Enum(signals...)),
	), h.handleToggleVisibility)

	// --- 9. Tool: reset_signal ---
	s.AddTool(mcp.NewTool("reset_signal",
		mcp.WithDescription("Discard a signal's control points and restore its baseline curve."),
		mcp.WithString("signal", mcp.Description("Signal key."), mcp.Required(), mcp.Enum(signals...)),
	), h.handleResetSignal)

	// --- 10. Tool: export_csv ---
	s.AddTool(mcp.NewTool("export_csv",
		mcp.WithDescription("Export the current timeline as CSV text."),
		mcp.WithString("columns", mcp.Description("Comma-separated column list. Defaults to reserved columns plus the selection.")),
	), h.handleExportCSV)

	// --- 11. Tool: import_csv ---
	s.AddTool(mcp.NewTool("import_csv",
		mcp.WithDescription("Replace the current timeline with one parsed from CSV text."),
		mcp.WithString("csv", mcp.Description("CSV content with a time column and one column per signal."), mcp.Required()),
	), h.handleImportCSV)

	// --- 12. Tool: get_signal_catalog ---
	s.AddTool(mcp.NewTool("get_signal_catalog",
		mcp.WithDescription("List the signal catalog with units, bounds, defaults, and normal bands."),
	), h.handleGetSignalCatalog)

	// --- 13. Tool: undo ---
	s.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the most recent timeline change."),
	), h.handleUndo)

	// --- 14. Tool: redo ---
	s.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Re-apply the most recently undone change."),
	), h.handleRedo)

	return s
}

// StartMCPServer starts the Vitaline MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store *core.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}

func signalEnum() []string {
	out := make([]string, len(schema.AllSignalKeys))
	for i, key := range schema.AllSignalKeys {
		out[i] = string(key)
	}
	return out
}
