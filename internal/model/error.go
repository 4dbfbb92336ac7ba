package model

import "fmt"

// ErrorKind classifies a failed step. Every kind terminates the step with a non-zero exit.
type ErrorKind string

const (
	KindConfigurationMissing  ErrorKind = "CONFIGURATION_MISSING"
	KindInvalidPattern        ErrorKind = "INVALID_PATTERN"
	KindOutputSinkUnavailable ErrorKind = "OUTPUT_SINK_UNAVAILABLE"
	KindInvalidInput          ErrorKind = "INVALID_INPUT"
	KindAssertionFailed       ErrorKind = "ASSERTION_FAILED"
)

// StepError is the only error type returned by the step packages.
type StepError struct {
	Kind    ErrorKind `json:"code"`
	Input   string    `json:"input,omitempty"` // name of the offending input, e.g. INPUT_PATTERN
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *StepError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *StepError) Unwrap() error { return e.Cause }

// Missing builds the CONFIGURATION_MISSING error used for absent required inputs.
func Missing(input string) *StepError {
	return &StepError{
		Kind:    KindConfigurationMissing,
		Input:   input,
		Message: input + " is required",
	}
}
