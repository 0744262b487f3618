package carpe

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	EINFERENCE   = "inference"
	EMISSING     = "missing_input"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("carpe error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnavailableError is returned before any inference work when the inference
// capability reports that it cannot serve requests.
type UnavailableError struct {
	Reason UnavailableReason
}

func (e *UnavailableError) Error() string {
	return e.Reason.Message()
}

// InferenceError wraps a failed call to the inference collaborator. The
// underlying error text is surfaced verbatim.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	if e.Err == nil {
		return "inference failed"
	}
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code. A failed
// inference call reports EINFERENCE even when the provider rejected it as
// unavailable. Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var inference *InferenceError
	if errors.As(err, &inference) {
		return EINFERENCE
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return EUNAVAILABLE
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var inference *InferenceError
	if errors.As(err, &inference) {
		return inference.Error()
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
