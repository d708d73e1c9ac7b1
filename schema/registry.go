package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// definitions is the static signal catalog. Bounds are hard clamping limits,
// soft bounds mark the normal band used for display shading only.
var definitions = map[SignalKey]SignalDefinition{
	SignalHR: {
		Unit: "bpm", Min: 0, Max: 220, Default: 70, Step: 1,
		SoftLow: 60, SoftHigh: 100, HasSoftBand: true,
	},
	SignalPulse: {
		Unit: "bpm", Min: 0, Max: 220, Default: 70, Step: 1,
		SoftLow: 60, SoftHigh: 100, HasSoftBand: true,
	},
	SignalSpO2: {
		Unit: "%", Min: 0, Max: 100, Default: 98, Step: 1,
		SoftLow: 94, SoftHigh: 100, HasSoftBand: true,
	},
	SignalRR: {
		Unit: "breaths/min", Min: 0, Max: 60, Default: 14, Step: 1,
		SoftLow: 8, SoftHigh: 20, HasSoftBand: true,
	},
	SignalEtCO2: {
		Unit: "mmHg", Min: 0, Max: 100, Default: 35, Step: 1,
		SoftLow: 30, SoftHigh: 45, HasSoftBand: true,
	},
	SignalNIBPSys: {
		Unit: "mmHg", Min: 0, Max: 300, Default: 120, Step: 1,
		SoftLow: 90, SoftHigh: 140, HasSoftBand: true,
	},
	SignalNIBPDia: {
		Unit: "mmHg", Min: 0, Max: 200, Default: 80, Step: 1,
		SoftLow: 60, SoftHigh: 90, HasSoftBand: true,
	},
	SignalNIBPMap: {
		Unit: "mmHg", Min: 0, Max: 250, Default: 93, Step: 1,
		SoftLow: 70, SoftHigh: 105, HasSoftBand: true,
	},
	SignalTemp: {
		Unit: "°C", Min: 25, Max: 45, Default: 37, Step: 0.1,
		SoftLow: 36.5, SoftHigh: 37.5, HasSoftBand: true,
	},
	SignalBIS: {
		Unit: "", Min: 0, Max: 100, Default: 97, Step: 1,
		SoftLow: 40, SoftHigh: 60, HasSoftBand: true,
	},
	SignalSQI: {
		Unit: "%", Min: 0, Max: 100, Default: 90, Step: 1,
	},
	SignalEMG: {
		Unit: "dB", Min: 0, Max: 100, Default: 30, Step: 1,
	},
	SignalMAC: {
		Unit: "", Min: 0, Max: 3, Default: 0, Step: 0.01,
	},
}

// integerKeys are the signal families rendered as rounded integers on export.
var integerKeys = map[SignalKey]struct{}{
	SignalHR:    {},
	SignalPulse: {},
	SignalSpO2:  {},
	SignalRR:    {},
	SignalBIS:   {},
	SignalSQI:   {},
	SignalEMG:   {},
}

// GetDefinition looks up the catalog entry for a signal key.
func GetDefinition(key SignalKey) (SignalDefinition, bool) {
	def, ok := definitions[key]
	return def, ok
}

// MustDefinition returns the catalog entry for a key that is known to exist.
// It panics on unknown keys, which indicates a programming error since the
// key set is closed and validated at construction.
func MustDefinition(key SignalKey) SignalDefinition {
	def, ok := definitions[key]
	if !ok {
		panic(fmt.Sprintf("unknown signal key: %s", key))
	}
	return def
}

// IsValidKey reports whether the key exists in the catalog.
func IsValidKey(key SignalKey) bool {
	_, ok := definitions[key]
	return ok
}

// MatchSignalKey resolves a column or user-supplied name to a catalog key by
// case-insensitive exact equality. Unmatched names report false.
func MatchSignalKey(name string) (SignalKey, bool) {
	trimmed := strings.TrimSpace(name)
	for _, key := range AllSignalKeys {
		if strings.EqualFold(trimmed, string(key)) {
			return key, true
		}
	}
	return "", false
}

// DecimalsFor returns the export precision for a signal: -1 means rounded
// integer, otherwise the number of decimal places.
func DecimalsFor(key SignalKey) int {
	if _, ok := integerKeys[key]; ok {
		return -1
	}
	if key == SignalMAC {
		return 2
	}
	return 1
}

// FormatValue renders a sample value per the signal's precision family.
// The output is stable and is what golden-file comparisons rely on.
func FormatValue(key SignalKey, v float64) string {
	decimals := DecimalsFor(key)
	if decimals < 0 {
		return strconv.Itoa(int(math.Round(v)))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
