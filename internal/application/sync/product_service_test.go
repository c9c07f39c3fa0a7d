package sync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

type productServiceFixture struct {
	products  *MockProductRepository
	client    *MockWMSClient
	snapshots *snapshotMap
	notices   *noticeRecorder
	service   *ProductSyncService
}

func newProductServiceFixture() *productServiceFixture {
	products := new(MockProductRepository)
	client := new(MockWMSClient)
	snapshots := newSnapshotMap()
	notices := &noticeRecorder{}
	return &productServiceFixture{
		products:  products,
		client:    client,
		snapshots: snapshots,
		notices:   notices,
		service:   NewProductSyncService(products, client, snapshots, notices, zap.NewNop()),
	}
}

func testProduct() *shop.Product {
	return &shop.Product{
		ID:           uuid.New(),
		Type:         shop.ProductTypeSimple,
		Name:         "Ceramic Cup",
		SKU:          "CUP-01",
		EAN:          "5901234123457",
		Manufacturer: "ACME",
		WMSName:      "Cup 250ml",
		Weight:       decimal.RequireFromString("0.25"),
		Published:    true,
	}
}

// begin captures the pre-change snapshot the way the change protocol does
func (f *productServiceFixture) begin(t *testing.T, product *shop.Product) {
	t.Helper()
	require.NoError(t, f.snapshots.Put(context.Background(), product.Snapshot()))
}

func TestProductSyncServiceCommitChange(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new product and persists the marker", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		f.begin(t, product)
		product.WMSName = "Cup 250ml v2"

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("CreateProduct", mock.Anything, wms.ProductPayload{
			Manufacturer: "ACME",
			SKU:          "CUP-01",
			EAN:          "5901234123457",
			Name:         "Cup 250ml v2",
			WeightGrams:  250,
		}).Return(&wms.ProductDetail{ID: 42, SKU: "CUP-01"}, nil)
		f.products.On("Save", mock.Anything, product).Return(nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		require.NotNil(t, product.WMSProductID)
		assert.Equal(t, "42", *product.WMSProductID)

		require.Len(t, f.notices.notices, 1)
		assert.Equal(t, sync.NoticeLevelSuccess, f.notices.notices[0].Level)
	})

	t.Run("missing weight never reaches the client", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		product.Weight = decimal.Zero
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		err := f.service.CommitChange(ctx, product.ID)
		validationErr, ok := sync.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, validationErr.MissingFields, "weight")
		f.client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)

		require.Len(t, f.notices.notices, 1)
		assert.Equal(t, sync.NoticeLevelWarning, f.notices.notices[0].Level)
		assert.Contains(t, f.notices.notices[0].Message, "weight")
	})

	t.Run("benign resave of a synced product is a no-op", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		require.NoError(t, product.MarkSyncedToWMS("42"))
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		f.client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		f.client.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("changed name triggers an update with name and weight only", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		require.NoError(t, product.MarkSyncedToWMS("42"))
		f.begin(t, product)
		product.WMSName = "Cup 330ml"

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("UpdateProduct", mock.Anything, "42", wms.ProductUpdate{
			Name:        "Cup 330ml",
			WeightGrams: 250,
		}).Return(nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		f.client.AssertExpectations(t)
	})

	t.Run("commit without a snapshot skips the sync", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		f.client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("snapshot is consumed by the commit", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		require.NoError(t, product.MarkSyncedToWMS("42"))
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		// second commit finds no snapshot and skips again
		require.NoError(t, f.service.CommitChange(ctx, product.ID))
	})
}

func TestProductSyncServiceDesyncRepair(t *testing.T) {
	ctx := context.Background()

	alreadyExists := func(product *shop.Product) *wms.APIError {
		return &wms.APIError{Status: 409, Message: "product with sku " + product.SKU + " already exists"}
	}

	t.Run("matching EAN relinks the local product", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("CreateProduct", mock.Anything, mock.Anything).
			Return(nil, alreadyExists(product))
		f.client.On("ListProducts", mock.Anything).Return([]wms.ProductSummary{
			{ID: 7, SKU: "OTHER-01"},
			{ID: 42, SKU: "CUP-01"},
		}, nil)
		f.client.On("GetProduct", mock.Anything, "42").Return(&wms.ProductDetail{
			ID:           42,
			SKU:          "CUP-01",
			EAN:          "5901234123457",
			Name:         "Cup 250ml (WMS)",
			Manufacturer: "ACME Sp. z o.o.",
			WeightGrams:  260,
		}, nil)
		f.products.On("Save", mock.Anything, product).Return(nil)

		require.NoError(t, f.service.CommitChange(ctx, product.ID))
		require.NotNil(t, product.WMSProductID)
		assert.Equal(t, "42", *product.WMSProductID)
		assert.Equal(t, "Cup 250ml (WMS)", product.WMSName)
		assert.Equal(t, "ACME Sp. z o.o.", product.Manufacturer)
		assert.Equal(t, int64(260), product.WeightGrams())

		require.Len(t, f.notices.notices, 1)
		assert.Equal(t, sync.NoticeLevelInfo, f.notices.notices[0].Level)
	})

	t.Run("EAN mismatch leaves the product untouched", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("CreateProduct", mock.Anything, mock.Anything).
			Return(nil, alreadyExists(product))
		f.client.On("ListProducts", mock.Anything).Return([]wms.ProductSummary{
			{ID: 42, SKU: "CUP-01"},
		}, nil)
		f.client.On("GetProduct", mock.Anything, "42").Return(&wms.ProductDetail{
			ID:  42,
			SKU: "CUP-01",
			EAN: "9999999999999",
		}, nil)

		err := f.service.CommitChange(ctx, product.ID)
		require.Error(t, err)
		assert.False(t, product.IsSyncedToWMS())
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		require.Len(t, f.notices.notices, 1)
		assert.Equal(t, sync.NoticeLevelError, f.notices.notices[0].Level)
	})

	t.Run("SKU absent from the catalog surfaces an error notice", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("CreateProduct", mock.Anything, mock.Anything).
			Return(nil, alreadyExists(product))
		f.client.On("ListProducts", mock.Anything).Return([]wms.ProductSummary{}, nil)

		err := f.service.CommitChange(ctx, product.ID)
		require.Error(t, err)
		assert.False(t, product.IsSyncedToWMS())

		require.Len(t, f.notices.notices, 1)
		assert.Equal(t, sync.NoticeLevelError, f.notices.notices[0].Level)
	})

	t.Run("unrelated error message skips the lookup", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		f.begin(t, product)

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("CreateProduct", mock.Anything, mock.Anything).
			Return(nil, &wms.APIError{Status: 500, Message: "internal error"})

		err := f.service.CommitChange(ctx, product.ID)
		require.Error(t, err)
		f.client.AssertNotCalled(t, "ListProducts", mock.Anything)
	})
}

func TestProductSyncServiceDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes remotely and clears the marker", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		require.NoError(t, product.MarkSyncedToWMS("42"))

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("DeleteProduct", mock.Anything, "42").Return(nil)
		f.products.On("Save", mock.Anything, product).Return(nil)

		require.NoError(t, f.service.DeleteProduct(ctx, product.ID))
		assert.False(t, product.IsSyncedToWMS())
	})

	t.Run("unsynced product is rejected", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		err := f.service.DeleteProduct(ctx, product.ID)
		require.ErrorIs(t, err, sync.ErrProductNotSynced)
		f.client.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})

	t.Run("remote failure keeps the marker", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()
		require.NoError(t, product.MarkSyncedToWMS("42"))

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.client.On("DeleteProduct", mock.Anything, "42").
			Return(&wms.APIError{Status: 500, Message: "internal error"})

		err := f.service.DeleteProduct(ctx, product.ID)
		require.Error(t, err)
		assert.True(t, product.IsSyncedToWMS())
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductSyncServiceBeginChange(t *testing.T) {
	ctx := context.Background()

	t.Run("captures the persisted state", func(t *testing.T) {
		f := newProductServiceFixture()
		product := testProduct()

		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		require.NoError(t, f.service.BeginChange(ctx, product.ID))
		snapshot, ok, err := f.snapshots.Take(ctx, product.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, product.Snapshot(), snapshot)
	})

	t.Run("unknown product is captured as empty", func(t *testing.T) {
		f := newProductServiceFixture()
		productID := uuid.New()

		f.products.On("FindByID", mock.Anything, productID).Return(nil, shop.ErrProductNotFound)

		require.NoError(t, f.service.BeginChange(ctx, productID))
		snapshot, ok, err := f.snapshots.Take(ctx, productID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, shop.ProductSnapshot{ID: productID}, snapshot)
	})
}

func TestProductSyncServiceListManufacturers(t *testing.T) {
	ctx := context.Background()

	f := newProductServiceFixture()
	expected := []wms.Manufacturer{{ID: 1, Name: "ACME"}, {ID: 2, Name: "Globex"}}
	f.client.On("ListManufacturers", mock.Anything).Return(expected, nil)

	manufacturers, err := f.service.ListManufacturers(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, manufacturers)
}
