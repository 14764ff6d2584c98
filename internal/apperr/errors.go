package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid reference")
)

// Invalid wraps ErrInvalidInput with a client-facing message.
func Invalid(format string, args ...any) error {
	return &messageError{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// Message returns the client-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return fallback
}

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.kind }
