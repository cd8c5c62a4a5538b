// Package oaserrors provides structured error types for the truespec engine
// and its surrounding HTTP adapter.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between input problems,
// environment problems, and store problems and react accordingly.
//
// # Error Categories
//
//   - InputError: the loader was given input it could not turn into a SpecDoc
//   - YamlUnavailableError: YAML decoding was required but no decoder is wired
//   - StoreError: the ReportStore could not be constructed or contacted
//   - UnexpectedError: a programmer-error / impossible-state condition
//
// # Usage with errors.Is
//
//	_, err := engine.DiffText(baseBody, headBody)
//	if errors.Is(err, oaserrors.ErrInputInvalid) {
//	    // respond 400
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInputInvalid indicates the loader returned no document, or the
	// loaded value was not a map.
	ErrInputInvalid = errors.New("input invalid")

	// ErrYamlUnavailable indicates YAML decoding was needed but no decoder
	// is available in this build.
	ErrYamlUnavailable = errors.New("yaml decoder unavailable")

	// ErrStoreUnavailable indicates the ReportStore could not be reached.
	ErrStoreUnavailable = errors.New("report store unavailable")

	// ErrStoreConflict indicates a duplicate row on insert. Callers treat
	// this as success rather than surfacing it.
	ErrStoreConflict = errors.New("report store conflict")

	// ErrUnexpected indicates a condition the engine believes cannot occur
	// for well-formed input.
	ErrUnexpected = errors.New("unexpected engine error")
)

// InputError represents input the loader or façade could not accept:
// empty/unparseable bytes, or a decoded value that isn't a map.
type InputError struct {
	// Source identifies what was being loaded ("base", "head", or a path).
	Source string
	// Message describes the problem.
	Message string
	// Cause is the underlying decode error, if any.
	Cause error
}

func (e *InputError) Error() string {
	msg := "input invalid"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InputError) Unwrap() error { return e.Cause }

func (e *InputError) Is(target error) bool { return target == ErrInputInvalid }

// YamlUnavailableError indicates the loader needed to parse YAML but no
// YAML decoder was linked into the build.
type YamlUnavailableError struct {
	Source string
}

func (e *YamlUnavailableError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("yaml decoder unavailable for %s", e.Source)
	}
	return "yaml decoder unavailable"
}

func (e *YamlUnavailableError) Is(target error) bool { return target == ErrYamlUnavailable }

// StoreError represents a failure to construct, reach, or write to a
// ReportStore.
type StoreError struct {
	// Op names the store operation that failed ("put", "listPage", "getById").
	Op string
	// Conflict is true when the failure is a duplicate-key conflict, which
	// callers should swallow rather than surface.
	Conflict bool
	// Message describes the failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *StoreError) Error() string {
	msg := "report store error"
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Cause }

func (e *StoreError) Is(target error) bool {
	if target == ErrStoreUnavailable {
		return !e.Conflict
	}
	if target == ErrStoreConflict {
		return e.Conflict
	}
	return false
}

// UnexpectedError wraps a condition the engine believes to be unreachable
// for well-formed input. Surfaced as a 500 and logged by the adapter.
type UnexpectedError struct {
	Message string
	Cause   error
}

func (e *UnexpectedError) Error() string {
	msg := "unexpected error"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UnexpectedError) Unwrap() error { return e.Cause }

func (e *UnexpectedError) Is(target error) bool { return target == ErrUnexpected }
