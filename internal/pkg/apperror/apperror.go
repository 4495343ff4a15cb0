package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindProcessing    Kind = "processing"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindRateLimit     Kind = "rate_limit"
	KindInternal      Kind = "internal"
)

// Error is the error type every use case returns to the transport layer. Message is safe to
// show to the client; Err holds the cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Processing(message string, err error) *Error {
	return &Error{Kind: KindProcessing, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Configuration(message string, details ...string) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Details: details}
}

func RateLimit(message string) *Error {
	return &Error{Kind: KindRateLimit, Message: message}
}
