package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShippingMethodKind distinguishes courier delivery from parcel-locker delivery.
type ShippingMethodKind string

const (
	// ShippingMethodCourier is a door-to-door courier delivery
	ShippingMethodCourier ShippingMethodKind = "courier"
	// ShippingMethodLocker is a parcel-machine / locker delivery that
	// requires a box identifier on the warehouse order
	ShippingMethodLocker ShippingMethodKind = "locker"
)

// ShippingMethod is the shipping method selected on an order.
type ShippingMethod struct {
	// ID is the shop-side shipping method identifier (e.g. "inpost", "dpd")
	ID string
	// Kind tells whether the method delivers to a parcel locker
	Kind ShippingMethodKind
}

// IsLocker returns true if the method delivers to a parcel machine
func (m *ShippingMethod) IsLocker() bool {
	return m != nil && m.Kind == ShippingMethodLocker
}

// ShippingAddress holds the delivery address of an order.
type ShippingAddress struct {
	FirstName string
	LastName  string
	Line1     string
	Line2     string
	City      string
	Zip       string
	Country   string
	Email     string
	Phone     string
}

// Trimmed returns a copy of the address with surrounding whitespace removed
// from every field
func (a ShippingAddress) Trimmed() ShippingAddress {
	return ShippingAddress{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Line1:     strings.TrimSpace(a.Line1),
		Line2:     strings.TrimSpace(a.Line2),
		City:      strings.TrimSpace(a.City),
		Zip:       strings.TrimSpace(a.Zip),
		Country:   strings.TrimSpace(a.Country),
		Email:     strings.TrimSpace(a.Email),
		Phone:     strings.TrimSpace(a.Phone),
	}
}

// OrderLine is a single sold line on an order. The SKU may be a composite
// key joining several physical SKUs (see SplitSKU).
type OrderLine struct {
	SKU      string
	Quantity int
}

// Order represents a shop order as the engine sees it. The order itself is
// owned by the shop platform; the engine only annotates the WMS marker
// fields as a side effect of successful remote calls.
type Order struct {
	ID              uuid.UUID
	Number          string
	Lines           []OrderLine
	ShippingMethod  *ShippingMethod
	ShippingAddress ShippingAddress
	CustomerNote    string
	// ParcelMachineID is the locker box chosen by the customer, persisted
	// on the order when the shop captured it at checkout
	ParcelMachineID string
	// WMSOrderID is the identifier assigned by the warehouse after the
	// first successful create call. Nil means "not yet created remotely".
	WMSOrderID *string
	// CancelledInWMS is monotonic: once true it is never reset
	CancelledInWMS bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSyncedToWMS returns true if the order already exists in the warehouse
func (o *Order) IsSyncedToWMS() bool {
	return o.WMSOrderID != nil && *o.WMSOrderID != ""
}

// MarkSyncedToWMS records the remote order identifier. Returns
// ErrOrderAlreadySynced when a marker is already present, so a duplicated
// create can never overwrite the first one.
func (o *Order) MarkSyncedToWMS(remoteID string) error {
	if o.IsSyncedToWMS() {
		return ErrOrderAlreadySynced
	}
	o.WMSOrderID = &remoteID
	o.UpdatedAt = time.Now()
	return nil
}

// MarkCancelledInWMS sets the monotonic cancelled marker
func (o *Order) MarkCancelledInWMS() {
	o.CancelledInWMS = true
	o.UpdatedAt = time.Now()
}
