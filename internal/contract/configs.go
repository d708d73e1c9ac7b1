package contract

import (
	"fmt"
	"strings"

	"github.com/openvitals/vitaline/schema"
)

// Default values for configuration.
const (
	DefaultDurationSec  = 1800    // 30 minutes
	DefaultSampleRateMs = 1000    // 1 Hz
	DefaultClockStart   = "07:00" // wall-clock anchor for the Clock column
)

// Config holds the runtime configuration for a CLI invocation.
// This struct remains the "final, validated" config.
type Config struct {
	DurationSec   int                // Timeline duration in seconds
	SampleRateMs  int64              // Grid spacing in milliseconds
	Keys          []schema.SignalKey // Selected signals, catalog-validated
	ClockStartMin int                // Clock column anchor, minutes since midnight

	Output     schema.OutputMode
	OutputFile string
	Columns    []string // Export columns; empty means reserved columns + selection

	ScenarioPath string // Optional scenario YAML applied after construction

	UseColors bool
	Width     int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Duration   int    `mapstructure:"duration"`
	SampleRate int64  `mapstructure:"sample-rate"`
	Signals    string `mapstructure:"signals"`
	ClockStart string `mapstructure:"clock-start"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Columns    string `mapstructure:"columns"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	ScenarioPath string // positional argument, not bound through Viper
}

// ProcessAndValidate populates cfg from the raw input, rejecting anything
// the engine would otherwise have to guess about.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Duration <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, input.Duration)
	}
	cfg.DurationSec = input.Duration

	if input.SampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRate, input.SampleRate)
	}
	cfg.SampleRateMs = input.SampleRate

	keys, err := ParseSignalList(input.Signals)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		keys = append(keys, schema.DefaultScenarioKeys...)
	}
	cfg.Keys = keys

	clockStart := input.ClockStart
	if clockStart == "" {
		clockStart = DefaultClockStart
	}
	startMin, err := ParseClockStart(clockStart)
	if err != nil {
		return err
	}
	cfg.ClockStartMin = startMin

	mode := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if mode == "" {
		mode = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("%w: %q must be text, csv, json or parquet", ErrInvalidOutputMode, input.Output)
	}
	cfg.Output = mode
	cfg.OutputFile = input.OutputFile

	cfg.Columns = splitList(input.Columns)
	cfg.ScenarioPath = input.ScenarioPath
	cfg.UseColors = parseYesNo(input.Color, true)
	cfg.Width = input.Width
	return nil
}

// ParseSignalList resolves a comma-separated signal list against the catalog.
func ParseSignalList(s string) ([]schema.SignalKey, error) {
	var keys []schema.SignalKey
	for _, name := range splitList(s) {
		key, ok := schema.MatchSignalKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown signal %q: valid signals are %s", name, joinKeys(schema.AllSignalKeys))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseYesNo interprets yes/no/true/false/1/0 with a fallback default.
func parseYesNo(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

func joinKeys(keys []schema.SignalKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
