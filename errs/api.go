package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type ApiErr struct {
	StatusCode int
	err        error
	kind       error  // sentinel matched by errors.Is
	Details    string // Additional details about the error, for logs only
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Message is the part of the error that is safe to show to a client.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Is matches the sentinel the error was built with, so the client-facing
// message can stay free of sentinel text.
func (e *ApiErr) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

// StatusOf reports the HTTP status carried by err, or 500 for anything that is not an ApiErr.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
