package service

import (
	"errors"
	"fmt"
)

// Kind classifies a task operation failure.
type Kind int

const (
	// KindNetwork is a transport failure; no response was received.
	KindNetwork Kind = iota + 1

	// KindService is a non-2xx response, or a 2xx response whose body
	// could not be decoded.
	KindService

	// KindNotFound is a 404 on an id-keyed operation, or a lookup miss.
	KindNotFound

	// KindValidation is a rejected input, either locally before submission
	// or by the service.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindService:
		return "service"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single error shape returned by every Service implementation.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // user-facing message, verbatim from the service when present
	Err     error  // underlying cause, if any
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrService    = &Error{Kind: KindService}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == ErrNetwork || t == ErrService || t == ErrNotFound || t == ErrValidation {
		return e.Kind == t.Kind
	}
	return e == t
}

// NetworkError wraps a transport failure.
func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// ServiceError builds an error for a non-2xx or undecodable response.
func ServiceError(status int, message string) *Error {
	return &Error{Kind: KindService, Status: status, Message: message}
}

// NotFoundError builds a not-found error.
func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Status: 404, Message: message}
}

// ValidationError builds a validation error.
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the user-facing message of the first *Error in err's
// chain, falling back to err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
