package sync

import (
	"errors"
	"fmt"
	"strings"
)

// Engine precondition errors. These are checked eagerly and never reach the
// API client.
var (
	// ErrMissingShippingMethod indicates the order has no resolvable
	// shipping method
	ErrMissingShippingMethod = errors.New("sync: order has no resolvable shipping method")
	// ErrEmptyOrder indicates the order has no line items left after SKU
	// expansion
	ErrEmptyOrder = errors.New("sync: order has no items to send")
	// ErrOrderNotSynced indicates an operation that requires a remote
	// order marker was attempted without one
	ErrOrderNotSynced = errors.New("sync: order has no WMS identifier")
	// ErrProductNotSynced indicates an operation that requires a remote
	// product marker was attempted without one
	ErrProductNotSynced = errors.New("sync: product has no WMS identifier")
	// ErrSnapshotMissing indicates the after-save hook fired without a
	// matching before-save snapshot; the sync is skipped
	ErrSnapshotMissing = errors.New("sync: no snapshot captured for product")
)

// ValidationError reports the required product fields that are missing or
// empty before a remote create is attempted.
type ValidationError struct {
	MissingFields []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("sync: missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// AsValidationError unwraps err into a ValidationError if there is one in
// its chain
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
