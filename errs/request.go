package errs

import (
	"errors"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMissingQueryParam    = errors.New("missing query parameter")
)

// NewMissingRequiredFieldError carries the message shown inline on the form.
func NewMissingRequiredFieldError(fieldName, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New(message),
		kind:       ErrMissingRequiredField,
		Field:      fieldName,
	}
}

// NewMissingQueryParamError reports an absent ?name= parameter as "Provide ?name=".
func NewMissingQueryParamError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New("Provide ?" + name + "="),
		kind:       ErrMissingQueryParam,
		Field:      name,
	}
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsMissingQueryParamError(err error) bool {
	return errors.Is(err, ErrMissingQueryParam)
}
