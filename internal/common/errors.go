// Package common defines the error taxonomy surfaced by the data-access layer.
// Callers branch on the error kind with errors.Is against the sentinel values
// below, or with KindOf in a switch. Messages are for humans only.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure by what the caller should do about it.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindValidation: a required field is missing or invalid; nothing was sent.
	KindValidation
	// KindFetch: generic transport failure or unexpected status.
	KindFetch
	// KindConnectivity: timeout or no response received.
	KindConnectivity
	// KindUnprocessableUpdate: the store answered 500 to an update.
	KindUnprocessableUpdate
	// KindNotFound: the store answered 404.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFetch:
		return "fetch"
	case KindConnectivity:
		return "connectivity"
	case KindUnprocessableUpdate:
		return "unprocessable update"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error with the same Kind matches.
var (
	ErrValidation          = &Error{Kind: KindValidation}
	ErrFetch               = &Error{Kind: KindFetch}
	ErrConnectivity        = &Error{Kind: KindConnectivity}
	ErrUnprocessableUpdate = &Error{Kind: KindUnprocessableUpdate}
	ErrNotFound            = &Error{Kind: KindNotFound}
)

// Error is the single error type returned by the data-access layer.
type Error struct {
	Kind Kind
	// Op is the logical operation, e.g. "unicorns.update".
	Op string
	// Status is the HTTP status when one was received, otherwise 0.
	Status int
	// Fields holds per-field messages for KindValidation.
	Fields map[string]string
	// Msg is a short human-readable summary.
	Msg string
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.FieldMessages(), "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// FieldMessages returns "field: message" pairs sorted by field name.
func (e *Error) FieldMessages() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+": "+e.Fields[name])
	}
	return out
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NewValidation builds a KindValidation error from per-field messages.
func NewValidation(op string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Op: op, Fields: fields}
}

// MissingID is the validation error for an operation that needs an id.
func MissingID(op string) *Error {
	return NewValidation(op, map[string]string{IDField: "id is required"})
}
