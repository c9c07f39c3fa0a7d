package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

// StockSyncService recomputes local stock quantities from the warehouse's
// sellable stock listing. Every pull is a full overwrite, never a delta
// merge.
type StockSyncService struct {
	products shop.ProductRepository
	client   wms.Client
	logger   *zap.Logger
}

// NewStockSyncService creates a new StockSyncService
func NewStockSyncService(
	products shop.ProductRepository,
	client wms.Client,
	logger *zap.Logger,
) *StockSyncService {
	return &StockSyncService{
		products: products,
		client:   client,
		logger:   logger,
	}
}

// PullStocks fetches the complete sellable stock listing and rewrites the
// stock quantity of every sellable local product. A remote fetch failure
// aborts the whole pull; a single product's write failure is logged and the
// pull continues.
func (s *StockSyncService) PullStocks(ctx context.Context) error {
	stocks, err := s.client.SellableStocks(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch sellable stocks from WMS", zap.Error(err))
		return err
	}

	index := make(map[string]int64, len(stocks))
	for _, item := range stocks {
		index[item.SKU] = item.Quantity
	}

	products, err := s.products.FindAllSellable(ctx)
	if err != nil {
		s.logger.Error("Failed to list sellable products", zap.Error(err))
		return err
	}

	for i := range products {
		product := &products[i]
		if !product.HasSKU() {
			continue
		}

		quantity := availableQuantity(index, product.SKU)
		if err := s.products.UpdateStockQuantity(ctx, product.ID, quantity); err != nil {
			s.logger.Error("Failed to write stock quantity",
				zap.String("product_id", product.ID.String()),
				zap.String("sku", product.SKU),
				zap.Error(err))
			continue
		}
	}

	s.logger.Info("Stock pull completed",
		zap.Int("remote_skus", len(index)),
		zap.Int("products", len(products)))
	return nil
}

// availableQuantity resolves the sellable quantity for a possibly composite
// SKU. A bundle is limited by its scarcest component; an SKU absent from the
// warehouse listing counts as zero, never as unlimited.
func availableQuantity(index map[string]int64, sku string) int64 {
	components := shop.SplitSKU(sku)
	if len(components) == 0 {
		return 0
	}

	quantity := index[components[0]]
	for _, component := range components[1:] {
		if q := index[component]; q < quantity {
			quantity = q
		}
	}
	return quantity
}
