package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries. The
// typed errors below unwrap to these.
var (
	ErrConfiguration        = errors.New("invalid configuration")
	ErrUnknownWord          = errors.New("unknown word")
	ErrDegenerateVector     = errors.New("degenerate vector")
	ErrCheckpointIO         = errors.New("checkpoint io failure")
	ErrNumericalInstability = errors.New("numerical instability")
)

// ConfigurationError reports an invalid parameter before any work starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// UnknownWordError reports a lookup or query token missing from the
// vocabulary.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("unknown word %q", e.Word)
}

func (e *UnknownWordError) Unwrap() error { return ErrUnknownWord }

// DegenerateVectorError reports a zero-norm vector where cosine similarity
// is undefined. Word and ID name the offending row; a composed query
// vector has no row, so Word is empty and ID is -1.
type DegenerateVectorError struct {
	Word string
	ID   int
}

func (e *DegenerateVectorError) Error() string {
	if e.Word == "" {
		return "zero-norm query vector"
	}
	return fmt.Sprintf("zero-norm vector for word %q (id %d)", e.Word, e.ID)
}

func (e *DegenerateVectorError) Unwrap() error { return ErrDegenerateVector }

// CheckpointIOError wraps a failed checkpoint read or write. The trainer
// treats write failures as non-fatal and keeps going.
type CheckpointIOError struct {
	Path string
	Err  error
}

func (e *CheckpointIOError) Error() string {
	return fmt.Sprintf("checkpoint %s: %v", e.Path, e.Err)
}

func (e *CheckpointIOError) Unwrap() []error { return []error{ErrCheckpointIO, e.Err} }

// NumericalInstabilityError reports a non-finite loss. Training halts on
// it; the last successfully written checkpoint stays on disk.
type NumericalInstabilityError struct {
	Epoch int
	Batch int
	Loss  string
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("non-finite %s loss at epoch %d batch %d", e.Loss, e.Epoch, e.Batch)
}

func (e *NumericalInstabilityError) Unwrap() error { return ErrNumericalInstability }
