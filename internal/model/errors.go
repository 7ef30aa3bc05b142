package model

import "fmt"

// SchemaError reports malformed input shape. Fatal to the operation that
// received the input, never to the whole cycle.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

// Schemaf builds a SchemaError from a format string.
func Schemaf(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

// NoDataError reports empty upstream data for a symbol.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no price data for %s", e.Symbol)
}

// SynthesisError reports that the report-generation collaborator failed or
// returned a structurally invalid report.
type SynthesisError struct {
	Symbol string
	Err    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize report for %s: %v", e.Symbol, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// ConfigError reports a malformed rubric or configuration. Fatal at
// construction time.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
