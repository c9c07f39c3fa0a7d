package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when the payload fails business validation
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadySynced is used when an entity already carries a warehouse marker
	ErrCodeAlreadySynced = "ERR_ALREADY_SYNCED"
	// ErrCodeNotSynced is used when an operation requires a warehouse marker that is absent
	ErrCodeNotSynced = "ERR_NOT_SYNCED"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Upstream error codes
const (
	// ErrCodeUpstream is used when the warehouse API rejected the request
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeUpstreamUnavailable is used when the warehouse API could not be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusUnprocessableEntity,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadySynced: http.StatusConflict,
	ErrCodeNotSynced:     http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeUpstream:            http.StatusBadGateway,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
