package service

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogNotFound    = errors.New("catalog not found")
	ErrCatalogMalformed   = errors.New("catalog malformed")
	ErrEmptyCatalog       = errors.New("no questions found in catalog")
	ErrInvalidTransition  = errors.New("invalid quiz transition")
	ErrNotCompleted       = fmt.Errorf("quiz not completed: %w", ErrInvalidTransition)
	ErrOrdinalOutOfRange  = errors.New("answer ordinal out of range")
	ErrEmptyCategoryTable = errors.New("category table is empty")
	ErrRankCount          = errors.New("unexpected number of collected ranks")
)

// MalformedError reports the catalog line that failed to parse.
type MalformedError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("catalog line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedError) Unwrap() []error {
	return []error{ErrCatalogMalformed, e.Err}
}

// OrdinalError is returned by SubmitAnswer for an answer the current question
// does not have.
type OrdinalError struct {
	Ordinal int
	Count   int
}

func (e *OrdinalError) Error() string {
	return fmt.Sprintf("answer %d not in 1..%d", e.Ordinal, e.Count)
}

func (e *OrdinalError) Unwrap() error { return ErrOrdinalOutOfRange }
