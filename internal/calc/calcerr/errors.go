// Package calcerr holds the error and warning values shared by the
// calculation packages.
//
// Errors reject a request outright and are returned before any partial
// result exists. Warnings ride along on successful results: standards
// non-compliance and unresolved fitting catalog entries are never errors.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind is a coarse classification callers can switch on.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindMalformedSegment Kind = "malformed_segment"
)

// Sentinels for errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMalformedSegment = errors.New("malformed segment")
)

// Error carries enough context to render an actionable message: the
// operation, the offending field or segment, and the rejected value.
type Error struct {
	Op        string
	Kind      Kind
	Field     string
	SegmentID string
	Value     any
	Msg       string
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.SegmentID != "" {
		base += fmt.Sprintf(" (segment=%s)", e.SegmentID)
	}
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Value != nil {
		base += fmt.Sprintf(" (got %v)", e.Value)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrMalformedSegment:
		return e.Kind == KindMalformedSegment
	}
	return false
}

func InvalidInput(op, field string, value any, msg string) *Error {
	return &Error{Op: op, Kind: KindInvalidInput, Field: field, Value: value, Msg: msg}
}

func MalformedSegment(op, segmentID, msg string) *Error {
	return &Error{Op: op, Kind: KindMalformedSegment, SegmentID: segmentID, Msg: msg}
}

// InSegment returns a copy of err annotated with a segment id when err is an
// *Error; other errors are wrapped unchanged.
func InSegment(err error, segmentID string) error {
	var ce *Error
	if errors.As(err, &ce) {
		cp := *ce
		cp.SegmentID = segmentID
		return &cp
	}
	return fmt.Errorf("segment %s: %w", segmentID, err)
}

// IsKind helps callers classify errors without type assertions.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// KindOf returns the error's kind or "" for foreign errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
