package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Repository errors
var (
	ErrOrderNotFound        = errors.New("shop: order not found")
	ErrProductNotFound      = errors.New("shop: product not found")
	ErrOrderAlreadySynced   = errors.New("shop: order already created in WMS")
	ErrProductAlreadySynced = errors.New("shop: product already created in WMS")
)

// OrderRepository is the port to the shop platform's order store. The
// engine reads orders and writes the WMS marker fields back.
type OrderRepository interface {
	// FindByID finds an order by its identifier
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// Save persists the order, including its WMS marker fields
	Save(ctx context.Context, order *Order) error
}

// ProductRepository is the port to the shop platform's product store.
type ProductRepository interface {
	// FindByID finds a product by its identifier
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAllSellable returns every published product with variation
	// children flattened into the same slice, each visited once
	FindAllSellable(ctx context.Context) ([]Product, error)

	// Save persists the product, including its WMS marker fields
	Save(ctx context.Context, product *Product) error

	// UpdateStockQuantity overwrites the stock quantity of one product
	UpdateStockQuantity(ctx context.Context, id uuid.UUID, quantity int64) error
}
