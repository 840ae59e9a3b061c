package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinels for errors.Is checks against the pipeline error kinds.
var (
	ErrMalformedDate = stderrors.New("malformed date")
	ErrMissingColumn = stderrors.New("missing column")
	ErrAggregation   = stderrors.New("aggregation key absent")
)

// MalformedDateError reports a date or month token that cannot be parsed.
type MalformedDateError struct {
	Table  string
	Row    int // 1-based data row, 0 when unknown
	Value  string
	Reason string
}

func (e *MalformedDateError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed date %q in %s row %d: %s", e.Value, e.Table, e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed date %q in %s: %s", e.Value, e.Table, e.Reason)
}

// Is matches ErrMalformedDate.
func (e *MalformedDateError) Is(target error) bool {
	return target == ErrMalformedDate
}

// NewMalformedDateError creates a MalformedDateError wrapped as a parsing AppError.
func NewMalformedDateError(table string, row int, value, reason string) *AppError {
	cause := &MalformedDateError{Table: table, Row: row, Value: value, Reason: reason}
	return NewAppError(ErrTypeParsing, "date normalization failed", cause).
		WithContext("table", table).
		WithContext("row", row)
}

// MissingColumnError reports an expected input column that is absent.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table is missing column %q", e.Table, e.Column)
}

// Is matches ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a MissingColumnError wrapped as a validation AppError.
func NewMissingColumnError(table, column string) *AppError {
	cause := &MissingColumnError{Table: table, Column: column}
	return NewAppError(ErrTypeValidation, "input table rejected", cause).
		WithContext("table", table).
		WithContext("column", column)
}

// AggregationError reports a grouping that found no rows for its key.
// Stages degrade to an empty result and log it instead of failing.
type AggregationError struct {
	Stage string
	Key   string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s: no rows for grouping key %s", e.Stage, e.Key)
}

// Is matches ErrAggregation.
func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregation
}

// NewAggregationError creates an AggregationError wrapped as an aggregation AppError.
func NewAggregationError(stage, key string) *AppError {
	cause := &AggregationError{Stage: stage, Key: key}
	return NewAppError(ErrTypeAggregation, "aggregation produced no rows", cause).
		WithContext("stage", stage)
}
