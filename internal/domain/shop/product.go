package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// gramsPerKilogram converts the shop's weight unit to the grams the WMS expects
const gramsPerKilogram = 1000

// ProductType is the shop-side product type tag. Variation children of a
// variable product carry their own SKU and stock and are synced
// individually; the variable parent is only a grouping shell.
type ProductType string

const (
	ProductTypeSimple    ProductType = "simple"
	ProductTypeVariable  ProductType = "variable"
	ProductTypeVariation ProductType = "variation"
)

// IsValid returns true if the product type is known
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeSimple, ProductTypeVariable, ProductTypeVariation:
		return true
	default:
		return false
	}
}

// Product represents a shop product with its WMS-specific fields. Owned by
// the shop platform; the engine mutates only the WMS marker fields and the
// stock quantity.
type Product struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Type     ProductType
	// Name is the shop-facing product name
	Name string
	// SKU may be a composite key joining several physical SKUs (a bundle)
	SKU string
	// EAN is the GTIN/EAN barcode
	EAN string
	// Manufacturer is the WMS manufacturer reference
	Manufacturer string
	// WMSName is the name the product carries in the warehouse
	WMSName string
	// WMSProductID is the identifier assigned by the warehouse after the
	// first successful create call. Nil means "not yet created remotely".
	WMSProductID *string
	// Weight is in kilograms, as stored by the shop
	Weight        decimal.Decimal
	StockQuantity int64
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsSyncedToWMS returns true if the product already exists in the warehouse
func (p *Product) IsSyncedToWMS() bool {
	return p.WMSProductID != nil && *p.WMSProductID != ""
}

// WeightGrams returns the product weight in integer grams, the unit the
// warehouse API works in
func (p *Product) WeightGrams() int64 {
	return p.Weight.Mul(decimal.NewFromInt(gramsPerKilogram)).IntPart()
}

// WeightFromGrams converts an integer gram value back into the kilogram
// decimal the shop stores
func WeightFromGrams(grams int64) decimal.Decimal {
	return decimal.NewFromInt(grams).Div(decimal.NewFromInt(gramsPerKilogram))
}

// MarkSyncedToWMS records the remote product identifier. Returns
// ErrProductAlreadySynced when a marker is already present.
func (p *Product) MarkSyncedToWMS(remoteID string) error {
	if p.IsSyncedToWMS() {
		return ErrProductAlreadySynced
	}
	p.WMSProductID = &remoteID
	p.UpdatedAt = time.Now()
	return nil
}

// ClearWMSMarker removes the remote identifier after a remote delete
func (p *Product) ClearWMSMarker() {
	p.WMSProductID = nil
	p.UpdatedAt = time.Now()
}

// HasSKU returns true if the product carries a non-empty SKU
func (p *Product) HasSKU() bool {
	return strings.TrimSpace(p.SKU) != ""
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// ProductSnapshot is an ephemeral field capture used to decide whether a
// remote create/update call is warranted. It is never persisted beyond the
// single save operation it brackets.
type ProductSnapshot struct {
	ID           uuid.UUID
	WMSProductID string
	Manufacturer string
	SKU          string
	EAN          string
	Name         string
	WeightGrams  int64
}

// Snapshot captures the comparable fields of the product
func (p *Product) Snapshot() ProductSnapshot {
	snap := ProductSnapshot{
		ID:           p.ID,
		Manufacturer: p.Manufacturer,
		SKU:          p.SKU,
		EAN:          p.EAN,
		Name:         p.WMSName,
		WeightGrams:  p.WeightGrams(),
	}
	if p.WMSProductID != nil {
		snap.WMSProductID = *p.WMSProductID
	}
	return snap
}

// Equal reports whether the two snapshots are field-for-field identical
func (s ProductSnapshot) Equal(other ProductSnapshot) bool {
	return s == other
}
