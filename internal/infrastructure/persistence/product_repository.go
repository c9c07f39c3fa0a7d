package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements shop.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ shop.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllSellable returns every published product that carries its own
// stock. Variable parents are grouping shells; their variation children are
// regular rows and come back flattened into the same slice.
func (r *GormProductRepository) FindAllSellable(ctx context.Context) ([]shop.Product, error) {
	var modelRows []models.ProductModel
	err := r.db.WithContext(ctx).
		Where("published = ? AND type <> ?", true, shop.ProductTypeVariable).
		Order("created_at ASC").
		Find(&modelRows).Error
	if err != nil {
		return nil, err
	}

	products := make([]shop.Product, 0, len(modelRows))
	for i := range modelRows {
		products = append(products, *modelRows[i].ToDomain())
	}
	return products, nil
}

// Save persists the product, including its WMS marker fields
func (r *GormProductRepository) Save(ctx context.Context, product *shop.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStockQuantity overwrites the stock quantity of one product
func (r *GormProductRepository) UpdateStockQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Update("stock_quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shop.ErrProductNotFound
	}
	return nil
}
