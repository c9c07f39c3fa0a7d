package wms

import "context"

// ---------------------------------------------------------------------------
// Order types
// ---------------------------------------------------------------------------

// OrderItem is one deduplicated SKU/quantity pair on a warehouse order
type OrderItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"qty"`
}

// OrderAddress is the delivery address block of a warehouse order. BoxName
// is only set for parcel-locker shipments.
type OrderAddress struct {
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Email     string `json:"email"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	Phone     string `json:"phone"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Country   string `json:"country"`
	BoxName   string `json:"box_name,omitempty"`
}

// CreateOrderRequest is the payload for creating a warehouse order
type CreateOrderRequest struct {
	WarehouseCode   string       `json:"warehouse_code"`
	ShippingMethod  string       `json:"shipping_method"`
	ShippingAddress OrderAddress `json:"shipping_address"`
	ShippingComment string       `json:"shipping_comment"`
	OrderNumber     string       `json:"order_number"`
	Items           []OrderItem  `json:"items"`
}

// CreateOrderResponse carries the identifier the warehouse assigned
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}

// UpdateOrderRequest is the payload for replacing the items of an existing
// warehouse order
type UpdateOrderRequest struct {
	WarehouseCode string      `json:"warehouse_code"`
	Items         []OrderItem `json:"items"`
}

// OrderDetails is the detail record of a warehouse order
type OrderDetails struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// ---------------------------------------------------------------------------
// Stock types
// ---------------------------------------------------------------------------

// StockItem is one SKU's sellable quantity in the warehouse
type StockItem struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// ---------------------------------------------------------------------------
// Product types
// ---------------------------------------------------------------------------

// ProductPayload is the payload for creating a warehouse product. Weight is
// in integer grams.
type ProductPayload struct {
	Manufacturer string `json:"manufacturer"`
	SKU          string `json:"sku"`
	EAN          string `json:"ean"`
	Name         string `json:"name"`
	WeightGrams  int64  `json:"weight"`
}

// ProductUpdate carries the only two fields the warehouse accepts on update
type ProductUpdate struct {
	Name        string `json:"name"`
	WeightGrams int64  `json:"weight"`
}

// ProductSummary is one entry of the paginated warehouse catalog listing
type ProductSummary struct {
	ID  int64  `json:"id"`
	SKU string `json:"sku"`
}

// ProductDetail is the full detail record of a warehouse product
type ProductDetail struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku"`
	EAN          string `json:"ean"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	WeightGrams  int64  `json:"weight"`
}

// Manufacturer is one entry of the warehouse manufacturer listing
type Manufacturer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ---------------------------------------------------------------------------
// Client port
// ---------------------------------------------------------------------------

// Client is the port to the warehouse management system API. The concrete
// HTTP implementation lives in the infrastructure layer; the engine only
// depends on this interface.
type Client interface {
	// CreateOrder creates an order in the warehouse
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// ShipOrder confirms shipment of a warehouse order
	ShipOrder(ctx context.Context, remoteOrderID string) error

	// UpdateOrder replaces the items of a warehouse order
	UpdateOrder(ctx context.Context, remoteOrderID string, req UpdateOrderRequest) error

	// CancelOrder cancels a warehouse order
	CancelOrder(ctx context.Context, remoteOrderID string) error

	// GetOrderDetails fetches the detail record of a warehouse order
	GetOrderDetails(ctx context.Context, remoteOrderID string) (*OrderDetails, error)

	// SellableStocks fetches the complete sellable stock listing of the
	// configured warehouse
	SellableStocks(ctx context.Context) ([]StockItem, error)

	// CreateProduct creates a product in the warehouse
	CreateProduct(ctx context.Context, payload ProductPayload) (*ProductDetail, error)

	// UpdateProduct updates name and weight of a warehouse product
	UpdateProduct(ctx context.Context, remoteProductID string, update ProductUpdate) error

	// DeleteProduct deletes a warehouse product
	DeleteProduct(ctx context.Context, remoteProductID string) error

	// ListProducts pages through the full warehouse catalog
	ListProducts(ctx context.Context) ([]ProductSummary, error)

	// GetProduct fetches the full detail record of a warehouse product
	GetProduct(ctx context.Context, remoteProductID string) (*ProductDetail, error)

	// ListManufacturers pages through the warehouse manufacturer listing
	ListManufacturers(ctx context.Context) ([]Manufacturer, error)
}
