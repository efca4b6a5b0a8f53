package books

import "errors"

// ErrNotFound is returned when an operation targets an id with no matching row.
var ErrNotFound = errors.New("book not found")

// ValidationError rejects a write because a required field is missing after
// sanitization. All other malformed input degrades silently instead.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errTitleRequired() *ValidationError {
	return &ValidationError{Field: "title", Message: "title is required"}
}
