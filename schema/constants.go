package schema

// Custom string types for type safety.
type (
	// SignalKey identifies a signal in the catalog.
	SignalKey string

	// OutputMode represents the format of the output.
	OutputMode string
)

// All signal keys supported. The set is closed: unknown keys are rejected at
// construction time, not at use.
const (
	SignalHR      SignalKey = "HR"
	SignalPulse   SignalKey = "Pulse"
	SignalSpO2    SignalKey = "SpO2"
	SignalRR      SignalKey = "RR"
	SignalEtCO2   SignalKey = "etCO2"
	SignalNIBPSys SignalKey = "NIBP-SYS"
	SignalNIBPDia SignalKey = "NIBP-DIA"
	SignalNIBPMap SignalKey = "NIBP-MAP"
	SignalTemp    SignalKey = "Temp"
	SignalBIS     SignalKey = "BIS"
	SignalSQI     SignalKey = "SQI"
	SignalEMG     SignalKey = "EMG"
	SignalMAC     SignalKey = "MAC"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// AllSignalKeys lists every catalog key in display order.
var AllSignalKeys = []SignalKey{
	SignalHR,
	SignalPulse,
	SignalSpO2,
	SignalRR,
	SignalEtCO2,
	SignalNIBPSys,
	SignalNIBPDia,
	SignalNIBPMap,
	SignalTemp,
	SignalBIS,
	SignalSQI,
	SignalEMG,
	SignalMAC,
}

// DefaultScenarioKeys is the signal selection used when no scenario is given:
// a 30-minute monitoring baseline of HR, SpO2, RR and etCO2.
var DefaultScenarioKeys = []SignalKey{SignalHR, SignalSpO2, SignalRR, SignalEtCO2}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// Reserved export column names. Signal columns follow after these.
const (
	ColumnTime       = "Time"
	ColumnRelativeMs = "RelativeTimeMilliseconds"
	ColumnClock      = "Clock"
)

// ReservedColumns lists the non-signal export columns in header order.
var ReservedColumns = []string{ColumnTime, ColumnRelativeMs, ColumnClock}
