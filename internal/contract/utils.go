package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/openvitals/vitaline/schema"
)

// Range label constants for soft-band classification.
const (
	NormalValue = "Normal" // inside the soft band
	LowValue    = "Low"    // below the soft band
	HighValue   = "High"   // above the soft band
	NoBandValue = "-"      // signal has no soft band
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // above the normal band
	LowColor    = color.New(color.FgYellow)          // below the normal band
	NormalColor = color.New(color.FgGreen)           // inside the normal band
)

// GetPlainRangeLabel classifies a value against the signal's soft band.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainRangeLabel(def schema.SignalDefinition, v float64) string {
	if !def.HasSoftBand {
		return NoBandValue
	}
	switch {
	case v < def.SoftLow:
		return LowValue
	case v > def.SoftHigh:
		return HighValue
	default:
		return NormalValue
	}
}

// GetColorRangeLabel returns a colored label for console output (table).
// It uses GetPlainRangeLabel to determine the string, then applies the color.
func GetColorRangeLabel(def schema.SignalDefinition, v float64) string {
	text := GetPlainRangeLabel(def, v)
	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	case NormalValue:
		return NormalColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning without exiting.
func LogWarn(msg string, err error) {
	fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
}
