package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingFile      = errors.New("file field is required")
	ErrParseFailed      = errors.New("presentation could not be opened")
	ErrExtractionFailed = errors.New("text extraction failed")
)

// ValidationError carries every rejection reason produced by the rule engine
// so the caller sees all violations at once.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation rejected: " + strings.Join(e.Reasons, "; ")
}
