package apperr

import (
	"errors"
	"fmt"
)

// ErrFetchUnavailable marks a failure in the acquisition gateway. It is
// surfaced to the caller, never retried by the pipeline.
var ErrFetchUnavailable = errors.New("fetch unavailable")

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ParseEmptyError means no text could be derived from a document. The
// document is still recorded; zero items are extracted.
type ParseEmptyError struct {
	URL string
}

func (e *ParseEmptyError) Error() string {
	return "no text derivable from document: " + e.URL
}

func NewParseEmpty(url string) *ParseEmptyError {
	return &ParseEmptyError{URL: url}
}

// ConflictError is a duplicate-key collision on a natural key (document URL,
// meeting date) under concurrent writers. Resolved by get-or-create retry,
// not fatal.
type ConflictError struct {
	Key string
	Err error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence conflict on %s: %v", e.Key, e.Err)
	}
	return "persistence conflict on " + e.Key
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func NewConflict(key string, err error) *ConflictError {
	return &ConflictError{Key: key, Err: err}
}

// FatalError means the record store or tracker backend is unreachable. It
// aborts the whole batch and marks nothing as processed.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func NewFatal(err error) *FatalError {
	return &FatalError{Err: err}
}

// IsFatal reports whether err should abort the current ingestion batch.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
