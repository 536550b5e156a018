package services

import (
	"fmt"
	"strings"
)

// InputError is a problem with what the caller sent. Handlers map it to 400.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func NewInputError(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError means the model provider failed or answered in a shape we do
// not recognise.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ParseError means the model text was not a single (optionally fenced) JSON value.
type ParseError struct {
	Err error
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError lists every way a well-formed JSON response misses the
// AnalysisResult schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "model response does not match analysis schema: " + strings.Join(e.Problems, "; ")
}
