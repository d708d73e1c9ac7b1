package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenarioFile(t, `
duration: 300
sample-rate: 500
signals:
  - key: HR
    control-points:
      - time: "00:01:00_000"
        value: 90
      - time: "120000"
        value: 110
  - key: SpO2
    hidden: true
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 300, sc.Duration)
	assert.Equal(t, int64(500), sc.SampleRate)
	require.Len(t, sc.Signals, 2)
	assert.Equal(t, "HR", sc.Signals[0].Key)
	require.Len(t, sc.Signals[0].ControlPoints, 2)
	assert.Equal(t, "00:01:00_000", sc.Signals[0].ControlPoints[0].Time)
	assert.Equal(t, 90.0, sc.Signals[0].ControlPoints[0].Value)
	assert.True(t, sc.Signals[1].Hidden)
}

func TestLoadScenarioRejectsEmptySelection(t *testing.T) {
	path := writeScenarioFile(t, "duration: 60\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
