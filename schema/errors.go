package schema

import (
	"errors"
	"strings"
)

// ErrInconsistentSchema is the sentinel matched by every InconsistencyError.
var ErrInconsistentSchema = errors.New("javagen: inconsistent schema")

// InconsistencyError reports contradictory or unusable metadata for one
// table. It is always local: one bad table never aborts a batch.
type InconsistencyError struct {
	Table   string
	Column  string
	Message string
}

// Error implements the error interface.
func (e *InconsistencyError) Error() string {
	var b strings.Builder
	b.WriteString("javagen: schema inconsistency")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error.
func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistentSchema
}

// NewInconsistencyError creates a new InconsistencyError.
func NewInconsistencyError(table, column, message string) *InconsistencyError {
	return &InconsistencyError{
		Table:   table,
		Column:  column,
		Message: message,
	}
}

// IsInconsistencyError reports whether the error is an InconsistencyError.
func IsInconsistencyError(err error) bool {
	var ie *InconsistencyError
	return errors.As(err, &ie)
}
