package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

// ProductSyncService keeps shop products aligned with the warehouse catalog
// through an explicit two-phase change protocol: BeginChange captures the
// pre-change state, CommitChange decides whether the warehouse needs a
// create or an update.
type ProductSyncService struct {
	products  shop.ProductRepository
	client    wms.Client
	snapshots sync.SnapshotStore
	notices   sync.NoticeStore
	logger    *zap.Logger
}

// NewProductSyncService creates a new ProductSyncService
func NewProductSyncService(
	products shop.ProductRepository,
	client wms.Client,
	snapshots sync.SnapshotStore,
	notices sync.NoticeStore,
	logger *zap.Logger,
) *ProductSyncService {
	return &ProductSyncService{
		products:  products,
		client:    client,
		snapshots: snapshots,
		notices:   notices,
		logger:    logger,
	}
}

// ---------------------------------------------------------------------------
// Two-phase change
// ---------------------------------------------------------------------------

// BeginChange captures the current persisted state of a product before the
// shop saves a change to it. A product that does not exist yet is captured
// as an empty snapshot, so the commit sees a genuinely new product.
func (s *ProductSyncService) BeginChange(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shop.ErrProductNotFound) {
			return s.snapshots.Put(ctx, shop.ProductSnapshot{ID: productID})
		}
		s.logger.Error("Failed to load product for snapshot",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return err
	}
	return s.snapshots.Put(ctx, product.Snapshot())
}

// CommitChange consumes the snapshot captured by BeginChange and reconciles
// the saved product with the warehouse. A commit without a matching begin
// skips the sync; the shop's save must never fail because of a lost
// snapshot.
func (s *ProductSyncService) CommitChange(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to load product for WMS sync",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return err
	}

	before, ok, err := s.snapshots.Take(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to read product snapshot",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return err
	}
	if !ok {
		s.logger.Warn("No snapshot for product change, skipping sync",
			zap.String("product_id", productID.String()))
		return nil
	}

	after := product.Snapshot()

	switch {
	case before.WMSProductID != "" && after.WMSProductID != "" && before.Equal(after):
		// benign resave, nothing changed
		return nil
	case after.WMSProductID == "":
		return s.createProduct(ctx, product)
	case before.Equal(after):
		return nil
	default:
		return s.updateProduct(ctx, product)
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (s *ProductSyncService) createProduct(ctx context.Context, product *shop.Product) error {
	if missing := missingProductFields(product); len(missing) > 0 {
		validationErr := &sync.ValidationError{MissingFields: missing}
		s.publishNotice(ctx, sync.NoticeLevelWarning,
			fmt.Sprintf("Cannot create product %q in WMS, missing required fields: %s",
				product.Name, strings.Join(missing, ", ")))
		return validationErr
	}

	payload := wms.ProductPayload{
		Manufacturer: product.Manufacturer,
		SKU:          product.SKU,
		EAN:          product.EAN,
		Name:         product.WMSName,
		WeightGrams:  product.WeightGrams(),
	}

	detail, err := s.client.CreateProduct(ctx, payload)
	if err != nil {
		s.logger.Error("Failed to create product in WMS",
			zap.String("product_id", product.ID.String()),
			zap.String("sku", product.SKU),
			zap.Error(err))
		if referencesProduct(err, product) {
			return s.repairDesync(ctx, product, err)
		}
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Failed to create product %q in WMS: %v", product.Name, err))
		return err
	}

	remoteID := strconv.FormatInt(detail.ID, 10)
	if err := product.MarkSyncedToWMS(remoteID); err != nil {
		return err
	}
	if err := s.products.Save(ctx, product); err != nil {
		s.logger.Error("Failed to persist WMS product marker",
			zap.String("product_id", product.ID.String()),
			zap.String("wms_product_id", remoteID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product created in WMS",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("wms_product_id", remoteID))
	s.publishNotice(ctx, sync.NoticeLevelSuccess,
		fmt.Sprintf("Product %q created in WMS as %s", product.Name, remoteID))
	return nil
}

// Required field labels surfaced in the validation notice
const (
	fieldManufacturer = "manufacturer"
	fieldSKU          = "SKU"
	fieldEAN          = "EAN"
	fieldWMSName      = "WMS name"
	fieldWeight       = "weight"
)

func missingProductFields(product *shop.Product) []string {
	var missing []string
	if strings.TrimSpace(product.Manufacturer) == "" {
		missing = append(missing, fieldManufacturer)
	}
	if !product.HasSKU() {
		missing = append(missing, fieldSKU)
	}
	if strings.TrimSpace(product.EAN) == "" {
		missing = append(missing, fieldEAN)
	}
	if strings.TrimSpace(product.WMSName) == "" {
		missing = append(missing, fieldWMSName)
	}
	if product.WeightGrams() <= 0 {
		missing = append(missing, fieldWeight)
	}
	return missing
}

// referencesProduct reports whether the create failure message mentions the
// submitted SKU or EAN, the warehouse's way of saying the product already
// exists
func referencesProduct(err error, product *shop.Product) bool {
	apiErr, ok := wms.AsAPIError(err)
	if !ok {
		return false
	}
	if product.HasSKU() && strings.Contains(apiErr.Message, product.SKU) {
		return true
	}
	return product.EAN != "" && strings.Contains(apiErr.Message, product.EAN)
}

// repairDesync searches the warehouse catalog for the product's SKU and,
// when the EAN confirms the match, relinks the local product to the existing
// remote record instead of creating a duplicate.
func (s *ProductSyncService) repairDesync(ctx context.Context, product *shop.Product, createErr error) error {
	summaries, err := s.client.ListProducts(ctx)
	if err != nil {
		s.logger.Error("Failed to list WMS catalog for desync repair",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Failed to create product %q in WMS: %v", product.Name, createErr))
		return createErr
	}

	var match *wms.ProductSummary
	for i := range summaries {
		if summaries[i].SKU == product.SKU {
			match = &summaries[i]
			break
		}
	}
	if match == nil {
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Product %q could not be created and its SKU %s was not found in the WMS catalog",
				product.Name, product.SKU))
		return createErr
	}

	remoteID := strconv.FormatInt(match.ID, 10)
	detail, err := s.client.GetProduct(ctx, remoteID)
	if err != nil {
		s.logger.Error("Failed to fetch WMS product detail for desync repair",
			zap.String("product_id", product.ID.String()),
			zap.String("wms_product_id", remoteID),
			zap.Error(err))
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Failed to create product %q in WMS: %v", product.Name, createErr))
		return createErr
	}

	if detail.EAN != product.EAN {
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("WMS product %s matches SKU %s but carries a different EAN, product %q left untouched",
				remoteID, product.SKU, product.Name))
		return createErr
	}

	product.WMSProductID = &remoteID
	product.WMSName = detail.Name
	product.Manufacturer = detail.Manufacturer
	product.Weight = shop.WeightFromGrams(detail.WeightGrams)
	if err := s.products.Save(ctx, product); err != nil {
		s.logger.Error("Failed to persist repaired product",
			zap.String("product_id", product.ID.String()),
			zap.String("wms_product_id", remoteID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product relinked to existing WMS record",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("wms_product_id", remoteID))
	s.publishNotice(ctx, sync.NoticeLevelInfo,
		fmt.Sprintf("Product %q relinked to existing WMS product %s", product.Name, remoteID))
	return nil
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (s *ProductSyncService) updateProduct(ctx context.Context, product *shop.Product) error {
	update := wms.ProductUpdate{
		Name:        product.WMSName,
		WeightGrams: product.WeightGrams(),
	}

	if err := s.client.UpdateProduct(ctx, *product.WMSProductID, update); err != nil {
		s.logger.Error("Failed to update product in WMS",
			zap.String("product_id", product.ID.String()),
			zap.String("wms_product_id", *product.WMSProductID),
			zap.Error(err))
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Failed to update product %q in WMS: %v", product.Name, err))
		return err
	}

	s.logger.Info("Product updated in WMS",
		zap.String("product_id", product.ID.String()),
		zap.String("wms_product_id", *product.WMSProductID))
	s.publishNotice(ctx, sync.NoticeLevelSuccess,
		fmt.Sprintf("Product %q updated in WMS", product.Name))
	return nil
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

// DeleteProduct removes the product from the warehouse and clears the local
// marker. Always request-triggered, the result goes back to the caller.
func (s *ProductSyncService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsSyncedToWMS() {
		return sync.ErrProductNotSynced
	}

	remoteID := *product.WMSProductID
	if err := s.client.DeleteProduct(ctx, remoteID); err != nil {
		s.logger.Error("Failed to delete product in WMS",
			zap.String("product_id", productID.String()),
			zap.String("wms_product_id", remoteID),
			zap.Error(err))
		return err
	}

	product.ClearWMSMarker()
	if err := s.products.Save(ctx, product); err != nil {
		s.logger.Error("Failed to clear WMS product marker",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted in WMS",
		zap.String("product_id", productID.String()),
		zap.String("wms_product_id", remoteID))
	return nil
}

// ---------------------------------------------------------------------------
// Manufacturers
// ---------------------------------------------------------------------------

// ListManufacturers pulls the warehouse manufacturer listing for the product
// admin form
func (s *ProductSyncService) ListManufacturers(ctx context.Context) ([]wms.Manufacturer, error) {
	manufacturers, err := s.client.ListManufacturers(ctx)
	if err != nil {
		s.logger.Error("Failed to list WMS manufacturers", zap.Error(err))
		return nil, err
	}
	return manufacturers, nil
}

func (s *ProductSyncService) publishNotice(ctx context.Context, level sync.NoticeLevel, message string) {
	if err := s.notices.Push(ctx, sync.NewNotice(level, message)); err != nil {
		s.logger.Error("Failed to publish notice", zap.Error(err))
	}
}
