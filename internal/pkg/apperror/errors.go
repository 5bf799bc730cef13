package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Error carries a kind sentinel, a message that is safe to show to API
// callers, and the underlying cause which is only ever logged.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func New(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func InvalidIdentifier(message string) *Error {
	return New(ErrInvalidIdentifier, message, nil)
}

func Validation(message string) *Error {
	return New(ErrValidation, message, nil)
}

func NotFound(message string) *Error {
	return New(ErrNotFound, message, nil)
}

func StoreUnavailable(message string, cause error) *Error {
	return New(ErrStoreUnavailable, message, cause)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
