package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Pipeline errors abort the whole load
	ErrMissingColumn = errors.New("required column missing")
	ErrRaggedRow     = errors.New("row width does not match header")

	// Handled locally by the feature engine, never surfaced
	ErrMalformedRange = errors.New("malformed owner range")

	// Analysis errors are scoped to the single requested operation
	ErrEmptyPopulation    = errors.New("no data for this selection")
	ErrInsufficientSample = errors.New("insufficient sample for statistical procedure")

	ErrInvalidConfidenceLevel = errors.New("unsupported confidence level")
	ErrInvalidWindow          = errors.New("unsupported rolling window")
	ErrUnknownColumn          = errors.New("unknown column")
)

// MissingColumnError lists the required columns absent from an input schema.
type MissingColumnError struct {
	Stage   string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Stage, ErrMissingColumn, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// RaggedRowError reports a data row whose cell count differs from the header.
type RaggedRowError struct {
	Stage string
	Row   int
	Width int
	Want  int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("%s: %v: row %d has %d cells, header has %d", e.Stage, ErrRaggedRow, e.Row, e.Width, e.Want)
}

func (e *RaggedRowError) Unwrap() error { return ErrRaggedRow }

// MalformedRangeError reports an owner range bound that is not an integer.
type MalformedRangeError struct {
	Input string
	Bound string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("%v: bound %q in %q", ErrMalformedRange, e.Bound, e.Input)
}

func (e *MalformedRangeError) Unwrap() error { return ErrMalformedRange }

// EmptyPopulationError is returned when an aggregate or statistic is requested
// on a view with zero rows.
type EmptyPopulationError struct {
	Operation string
}

func (e *EmptyPopulationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, ErrEmptyPopulation)
}

func (e *EmptyPopulationError) Unwrap() error { return ErrEmptyPopulation }

// InsufficientSampleError is returned when a population is non-empty but too
// small for the requested procedure.
type InsufficientSampleError struct {
	Operation string
	Have      int
	Need      int
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("%s: %v (have %d, need at least %d)", e.Operation, ErrInsufficientSample, e.Have, e.Need)
}

func (e *InsufficientSampleError) Unwrap() error { return ErrInsufficientSample }

// Error constructors with context
func NewMissingColumnError(stage string, columns ...string) error {
	return &MissingColumnError{Stage: stage, Columns: columns}
}

func NewRaggedRowError(stage string, row, width, want int) error {
	return &RaggedRowError{Stage: stage, Row: row, Width: width, Want: want}
}

func NewEmptyPopulationError(operation string) error {
	return &EmptyPopulationError{Operation: operation}
}

func NewInsufficientSampleError(operation string, have, need int) error {
	return &InsufficientSampleError{Operation: operation, Have: have, Need: need}
}

// IsPipelineError reports whether err means the input table itself is
// unusable and the whole load has to fail.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrRaggedRow)
}

// IsNoDataError reports whether err means the selection cannot support the
// requested computation. Callers show a "no data for this selection" notice.
func IsNoDataError(err error) bool {
	return errors.Is(err, ErrEmptyPopulation) ||
		errors.Is(err, ErrInsufficientSample)
}
