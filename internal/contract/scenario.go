package contract

import (
	"fmt"

	"github.com/spf13/viper"
)

// Scenario describes a timeline to build: grid geometry, signal selection
// and the control-point edits to apply. Loaded from a YAML file through
// Viper so the same mapstructure conventions apply as for the main config.
type Scenario struct {
	Duration   int              `mapstructure:"duration"`
	SampleRate int64            `mapstructure:"sample-rate"`
	Signals    []ScenarioSignal `mapstructure:"signals"`
}

// ScenarioSignal selects one signal and its edits.
type ScenarioSignal struct {
	Key           string          `mapstructure:"key"`
	Hidden        bool            `mapstructure:"hidden"`
	ControlPoints []ScenarioPoint `mapstructure:"control-points"`
}

// ScenarioPoint is one control point. Time accepts the same encodings as
// CSV import cells: HH:MM:SS_mmm, MM:SS, or bare milliseconds.
type ScenarioPoint struct {
	Time  string  `mapstructure:"time"`
	Value float64 `mapstructure:"value"`
}

// LoadScenario reads and unmarshals a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading scenario file %s: %w", path, err)
	}

	sc := &Scenario{}
	if err := v.Unmarshal(sc); err != nil {
		return nil, fmt.Errorf("unable to unmarshal scenario %s: %w", path, err)
	}
	if len(sc.Signals) == 0 {
		return nil, fmt.Errorf("scenario %s selects no signals", path)
	}
	return sc, nil
}
