package errs

import "net/http"

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates the request rate exceeded the limit.
	ErrRateLimitExceeded = 1002
)

// 2xxx: Chat Protocol Errors
const (
	// ErrProtocolViolation indicates a structurally valid but contextually
	// disallowed frame, such as a chat before the join handshake.
	ErrProtocolViolation = 2001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)

// errorMap holds the template CustomError for every code.
var errorMap = map[int]CustomError{
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrProtocolViolation: {Code: ErrProtocolViolation, Message: "Protocol violation.", Status: http.StatusBadRequest},
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
