package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation. Callers match with errors.Is.
var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrNoVideos        = errors.New("at least one video is required")
	ErrThresholdRange  = errors.New("similarity_threshold must be within [0, 1]")
	ErrChunkSizeRange  = errors.New("chunk_size must be within [1, 20]")
	ErrTopKRange       = errors.New("top_k must be within [1, 50]")
	ErrMinResultsRange = errors.New("min_results must be within [0, 10]")
)

// ValidationError wraps a sentinel error with the offending field and value.
type ValidationError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Wrapped)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

func invalid(field string, value any, wrapped error) error {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
