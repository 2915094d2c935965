package manifest

import (
	"errors"
	"fmt"
)

// ErrManifestParse is the sentinel matched by every ParseError.
var ErrManifestParse = errors.New("javagen: manifest parse failed")

// ParseError reports an unreadable or malformed pom.xml.
type ParseError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("javagen: cannot parse manifest %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error.
func (e *ParseError) Is(target error) bool {
	return target == ErrManifestParse
}

// NewParseError creates a new ParseError.
func NewParseError(path string, cause error) *ParseError {
	return &ParseError{Path: path, Cause: cause}
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
