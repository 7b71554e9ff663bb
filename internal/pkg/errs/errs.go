/*
Package errs provides the application's custom error type and error codes.

CustomError carries a business code, a user-facing message, and the HTTP
status used when the error is rendered as a response.
*/
package errs

import (
	"fmt"
	"net/http"
)

// CustomError is the error type used across handler boundaries.
type CustomError struct {
	// Code is the business error code (see codes.go).
	Code int

	// Message is the user-facing description.
	Message string

	// Status is the HTTP status the error maps to.
	Status int
}

// Error implements the standard error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined code. Optional details
// are applied printf-style when the message template has placeholders.
// Unknown codes fall back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		template = errorMap[ErrUnknown]
	}

	e := template
	if e.Status == 0 {
		e.Status = http.StatusOK
	}
	if len(details) > 0 {
		e.Message = fmt.Sprintf(e.Message, details...)
	}

	return &e
}
