package wms

import (
	"errors"
	"fmt"
)

// TransportError indicates the request never produced an HTTP response
// (network, DNS or connection failure). It is always fatal to the current
// operation and is never retried automatically.
type TransportError struct {
	Message string
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("wms api: %s", e.Message)
}

// APIError indicates the warehouse rejected the request with an HTTP error
// status. Message is the human-readable text extracted from the response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("wms api: %s (status %d)", e.Message, e.Status)
}

// AsAPIError unwraps err into an APIError if there is one in its chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransportError reports whether err stems from a transport failure
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
