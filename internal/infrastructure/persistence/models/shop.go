package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wmsconnector/backend/internal/domain/shop"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Number             string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	LinesJSON          string    `gorm:"type:jsonb;column:lines"`
	ShippingMethodID   string    `gorm:"type:varchar(50)"`
	ShippingMethodKind string    `gorm:"type:varchar(20)"`
	FirstName          string    `gorm:"type:varchar(100)"`
	LastName           string    `gorm:"type:varchar(100)"`
	Line1              string    `gorm:"type:varchar(255)"`
	Line2              string    `gorm:"type:varchar(255)"`
	City               string    `gorm:"type:varchar(100)"`
	Zip                string    `gorm:"type:varchar(20)"`
	Country            string    `gorm:"type:varchar(2)"`
	Email              string    `gorm:"type:varchar(255)"`
	Phone              string    `gorm:"type:varchar(50)"`
	CustomerNote       string    `gorm:"type:text"`
	ParcelMachineID    string    `gorm:"type:varchar(50)"`
	WMSOrderID         *string   `gorm:"type:varchar(50);column:wms_order_id;index"`
	CancelledInWMS     bool      `gorm:"not null;default:false;column:cancelled_in_wms"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *shop.Order {
	order := &shop.Order{
		ID:     m.ID,
		Number: m.Number,
		ShippingAddress: shop.ShippingAddress{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Line1:     m.Line1,
			Line2:     m.Line2,
			City:      m.City,
			Zip:       m.Zip,
			Country:   m.Country,
			Email:     m.Email,
			Phone:     m.Phone,
		},
		CustomerNote:    m.CustomerNote,
		ParcelMachineID: m.ParcelMachineID,
		WMSOrderID:      m.WMSOrderID,
		CancelledInWMS:  m.CancelledInWMS,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if m.ShippingMethodID != "" {
		order.ShippingMethod = &shop.ShippingMethod{
			ID:   m.ShippingMethodID,
			Kind: shop.ShippingMethodKind(m.ShippingMethodKind),
		}
	}

	if m.LinesJSON != "" {
		var lines []shop.OrderLine
		if err := json.Unmarshal([]byte(m.LinesJSON), &lines); err == nil {
			order.Lines = lines
		}
	}

	return order
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(order *shop.Order) {
	m.ID = order.ID
	m.Number = order.Number
	m.FirstName = order.ShippingAddress.FirstName
	m.LastName = order.ShippingAddress.LastName
	m.Line1 = order.ShippingAddress.Line1
	m.Line2 = order.ShippingAddress.Line2
	m.City = order.ShippingAddress.City
	m.Zip = order.ShippingAddress.Zip
	m.Country = order.ShippingAddress.Country
	m.Email = order.ShippingAddress.Email
	m.Phone = order.ShippingAddress.Phone
	m.CustomerNote = order.CustomerNote
	m.ParcelMachineID = order.ParcelMachineID
	m.WMSOrderID = order.WMSOrderID
	m.CancelledInWMS = order.CancelledInWMS
	m.CreatedAt = order.CreatedAt
	m.UpdatedAt = order.UpdatedAt

	if order.ShippingMethod != nil {
		m.ShippingMethodID = order.ShippingMethod.ID
		m.ShippingMethodKind = string(order.ShippingMethod.Kind)
	} else {
		m.ShippingMethodID = ""
		m.ShippingMethodKind = ""
	}

	if len(order.Lines) > 0 {
		if jsonBytes, err := json.Marshal(order.Lines); err == nil {
			m.LinesJSON = string(jsonBytes)
		}
	} else {
		m.LinesJSON = "[]"
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
// entity.
func OrderModelFromDomain(order *shop.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(order)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key"`
	ParentID      *uuid.UUID       `gorm:"type:uuid;index"`
	Type          shop.ProductType `gorm:"type:varchar(20);not null"`
	Name          string           `gorm:"type:varchar(255);not null"`
	SKU           string           `gorm:"type:varchar(100);index"`
	EAN           string           `gorm:"type:varchar(20)"`
	Manufacturer  string           `gorm:"type:varchar(100)"`
	WMSName       string           `gorm:"type:varchar(255);column:wms_name"`
	WMSProductID  *string          `gorm:"type:varchar(50);column:wms_product_id;index"`
	Weight        decimal.Decimal  `gorm:"type:numeric(12,3);not null;default:0"`
	StockQuantity int64            `gorm:"not null;default:0"`
	Published     bool             `gorm:"not null;default:false"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *shop.Product {
	return &shop.Product{
		ID:            m.ID,
		ParentID:      m.ParentID,
		Type:          m.Type,
		Name:          m.Name,
		SKU:           m.SKU,
		EAN:           m.EAN,
		Manufacturer:  m.Manufacturer,
		WMSName:       m.WMSName,
		WMSProductID:  m.WMSProductID,
		Weight:        m.Weight,
		StockQuantity: m.StockQuantity,
		Published:     m.Published,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(product *shop.Product) {
	m.ID = product.ID
	m.ParentID = product.ParentID
	m.Type = product.Type
	m.Name = product.Name
	m.SKU = product.SKU
	m.EAN = product.EAN
	m.Manufacturer = product.Manufacturer
	m.WMSName = product.WMSName
	m.WMSProductID = product.WMSProductID
	m.Weight = product.Weight
	m.StockQuantity = product.StockQuantity
	m.Published = product.Published
	m.CreatedAt = product.CreatedAt
	m.UpdatedAt = product.UpdatedAt
}

// ProductModelFromDomain creates a new persistence model from a domain
// Product entity.
func ProductModelFromDomain(product *shop.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(product)
	return m
}
