// Package contract provides configuration, validation and shared utilities
// for the CLI and tool surfaces around the timeline engine.
package contract

import "errors"

// Validation errors surfaced to callers. Each leaves prior state untouched.
var (
	ErrInvalidOutputMode = errors.New("invalid output mode")
	ErrInvalidDuration   = errors.New("duration must be a positive number of seconds")
	ErrInvalidSampleRate = errors.New("sample rate must be a positive number of milliseconds")
)
