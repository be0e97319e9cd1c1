// Package fault defines the client-side error taxonomy. Every failure a
// command can surface maps onto one of these kinds so the CLI layer can
// choose the right presentation (inline notice, blocking banner, or
// re-authentication) without string matching.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindValidation marks malformed input, e.g. progress out of range.
	KindValidation Kind = iota
	// KindForbidden marks a role/ownership check failure.
	KindForbidden
	// KindLocked marks a mutation attempted on an accepted task.
	KindLocked
	// KindAlreadyAccepted marks a second accept on an accepted task.
	KindAlreadyAccepted
	// KindUnauthorized marks a rejected or expired token.
	KindUnauthorized
	// KindNotFound marks a missing entity.
	KindNotFound
	// KindTransport marks a network or backend failure; the triggering
	// action is retryable by the user and prior state is preserved.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindLocked:
		return "locked"
	case KindAlreadyAccepted:
		return "already_accepted"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a classified error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of err, or KindTransport if err carries no
// classification. Callers check for success first; a nil err maps to
// KindTransport like any other unclassified error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return Is(err, KindValidation) }

// IsForbidden reports whether err is a role/ownership failure.
func IsForbidden(err error) bool { return Is(err, KindForbidden) }

// IsLocked reports whether err is an acceptance-lock failure.
func IsLocked(err error) bool { return Is(err, KindLocked) }

// IsAlreadyAccepted reports whether err is a duplicate accept.
func IsAlreadyAccepted(err error) bool { return Is(err, KindAlreadyAccepted) }

// IsUnauthorized reports whether err is a token rejection.
func IsUnauthorized(err error) bool { return Is(err, KindUnauthorized) }
