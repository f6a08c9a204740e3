package engine

import "fmt"

// ValidationError reports malformed input: negative hours, zero
// timestamps, missing contract fields. It is never produced for
// insufficient history, which is a legitimate non-error state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func invalidInput(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
