package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrRenderFailed indicates a template/context mismatch.
	ErrRenderFailed = errors.New("javagen: template render failed")
	// ErrPathCollision indicates two tables mapped to the same output path.
	ErrPathCollision = errors.New("javagen: output path collision")
	// ErrInvalidRequest indicates a request that invalidates the whole call.
	ErrInvalidRequest = errors.New("javagen: invalid generation request")
)

// RenderError reports a template referencing a context value the builder did
// not populate for the current option set. It aborts the affected file only.
type RenderError struct {
	Template string // template id
	Variable string // offending template expression, when identifiable
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("javagen: render error")
	if e.Template != "" {
		b.WriteString(" in template ")
		b.WriteString(e.Template)
	}
	if e.Variable != "" {
		b.WriteString(" at ")
		b.WriteString(e.Variable)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

// NewRenderError creates a new RenderError.
func NewRenderError(template, variable string, cause error) *RenderError {
	return &RenderError{
		Template: template,
		Variable: variable,
		Cause:    cause,
	}
}

// CollisionError reports two or more tables producing the same output path.
// It is attached to the result so the caller can rename; it is never thrown
// mid-run and never discards the other tables' output.
type CollisionError struct {
	Path   string
	Tables []string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("javagen: output path %q produced by tables %s",
		e.Path, strings.Join(e.Tables, ", "))
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrPathCollision
}

// RequestError reports a whole-request-invalidating condition, such as an
// unknown variant or an empty table set.
type RequestError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("javagen: invalid request field %q: %s", e.Field, e.Message)
}

// Is reports whether the target matches the sentinel error for RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewRequestError creates a new RequestError.
func NewRequestError(field, message string) *RequestError {
	return &RequestError{Field: field, Message: message}
}

// IsRenderError reports whether the error is a RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// IsCollisionError reports whether the error is a CollisionError.
func IsCollisionError(err error) bool {
	var ce *CollisionError
	return errors.As(err, &ce)
}

// IsRequestError reports whether the error is a RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
