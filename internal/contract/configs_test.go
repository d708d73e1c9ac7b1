package contract

import (
	"testing"

	"github.com/openvitals/vitaline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Duration:   DefaultDurationSec,
		SampleRate: DefaultSampleRateMs,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, 1800, cfg.DurationSec)
	assert.Equal(t, int64(1000), cfg.SampleRateMs)
	assert.Equal(t, schema.DefaultScenarioKeys, cfg.Keys)
	assert.Equal(t, 7*60, cfg.ClockStartMin)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.Columns)
}

func TestProcessAndValidateSignals(t *testing.T) {
	input := validInput()
	input.Signals = "hr, spo2,MAC"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []schema.SignalKey{schema.SignalHR, schema.SignalSpO2, schema.SignalMAC}, cfg.Keys)
}

func TestProcessAndValidateUnknownSignal(t *testing.T) {
	input := validInput()
	input.Signals = "HR,Nonsense"

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nonsense")
}

func TestProcessAndValidateRejectsBadGrid(t *testing.T) {
	input := validInput()
	input.Duration = 0
	assert.ErrorIs(t, ProcessAndValidate(&Config{}, input), ErrInvalidDuration)

	input = validInput()
	input.SampleRate = -10
	assert.ErrorIs(t, ProcessAndValidate(&Config{}, input), ErrInvalidSampleRate)
}

func TestProcessAndValidateOutputMode(t *testing.T) {
	input := validInput()
	input.Output = "Parquet"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.ParquetOut, cfg.Output)

	input.Output = "yaml"
	assert.ErrorIs(t, ProcessAndValidate(&Config{}, input), ErrInvalidOutputMode)
}

func TestProcessAndValidateColumnsAndColor(t *testing.T) {
	input := validInput()
	input.Columns = "Time, HR,, SpO2 "
	input.Color = "no"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"Time", "HR", "SpO2"}, cfg.Columns)
	assert.False(t, cfg.UseColors)
}

func TestGetPlainRangeLabel(t *testing.T) {
	hr := schema.MustDefinition(schema.SignalHR)
	assert.Equal(t, NormalValue, GetPlainRangeLabel(hr, 80))
	assert.Equal(t, LowValue, GetPlainRangeLabel(hr, 45))
	assert.Equal(t, HighValue, GetPlainRangeLabel(hr, 140))

	sqi := schema.MustDefinition(schema.SignalSQI)
	assert.Equal(t, NoBandValue, GetPlainRangeLabel(sqi, 90))
}
