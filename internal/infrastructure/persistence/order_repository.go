package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements shop.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ shop.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the order, including its WMS marker fields
func (r *GormOrderRepository) Save(ctx context.Context, order *shop.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}
