package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

// MockOrderRepository is a mock implementation of shop.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *shop.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of shop.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllSellable(ctx context.Context) ([]shop.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *shop.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStockQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockWMSClient is a mock implementation of wms.Client
type MockWMSClient struct {
	mock.Mock
}

func (m *MockWMSClient) CreateOrder(ctx context.Context, req wms.CreateOrderRequest) (*wms.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wms.CreateOrderResponse), args.Error(1)
}

func (m *MockWMSClient) ShipOrder(ctx context.Context, remoteOrderID string) error {
	args := m.Called(ctx, remoteOrderID)
	return args.Error(0)
}

func (m *MockWMSClient) UpdateOrder(ctx context.Context, remoteOrderID string, req wms.UpdateOrderRequest) error {
	args := m.Called(ctx, remoteOrderID, req)
	return args.Error(0)
}

func (m *MockWMSClient) CancelOrder(ctx context.Context, remoteOrderID string) error {
	args := m.Called(ctx, remoteOrderID)
	return args.Error(0)
}

func (m *MockWMSClient) GetOrderDetails(ctx context.Context, remoteOrderID string) (*wms.OrderDetails, error) {
	args := m.Called(ctx, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wms.OrderDetails), args.Error(1)
}

func (m *MockWMSClient) SellableStocks(ctx context.Context) ([]wms.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wms.StockItem), args.Error(1)
}

func (m *MockWMSClient) CreateProduct(ctx context.Context, payload wms.ProductPayload) (*wms.ProductDetail, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wms.ProductDetail), args.Error(1)
}

func (m *MockWMSClient) UpdateProduct(ctx context.Context, remoteProductID string, update wms.ProductUpdate) error {
	args := m.Called(ctx, remoteProductID, update)
	return args.Error(0)
}

func (m *MockWMSClient) DeleteProduct(ctx context.Context, remoteProductID string) error {
	args := m.Called(ctx, remoteProductID)
	return args.Error(0)
}

func (m *MockWMSClient) ListProducts(ctx context.Context) ([]wms.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wms.ProductSummary), args.Error(1)
}

func (m *MockWMSClient) GetProduct(ctx context.Context, remoteProductID string) (*wms.ProductDetail, error) {
	args := m.Called(ctx, remoteProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wms.ProductDetail), args.Error(1)
}

func (m *MockWMSClient) ListManufacturers(ctx context.Context) ([]wms.Manufacturer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wms.Manufacturer), args.Error(1)
}

// noticeRecorder collects published notices for assertions
type noticeRecorder struct {
	notices []sync.Notice
}

func (r *noticeRecorder) Push(_ context.Context, notice sync.Notice) error {
	r.notices = append(r.notices, notice)
	return nil
}

func (r *noticeRecorder) Drain(_ context.Context) ([]sync.Notice, error) {
	drained := r.notices
	r.notices = nil
	return drained, nil
}

// snapshotMap is a single-process snapshot store for tests
type snapshotMap struct {
	snapshots map[uuid.UUID]shop.ProductSnapshot
}

func newSnapshotMap() *snapshotMap {
	return &snapshotMap{snapshots: make(map[uuid.UUID]shop.ProductSnapshot)}
}

func (s *snapshotMap) Put(_ context.Context, snapshot shop.ProductSnapshot) error {
	s.snapshots[snapshot.ID] = snapshot
	return nil
}

func (s *snapshotMap) Take(_ context.Context, productID uuid.UUID) (shop.ProductSnapshot, bool, error) {
	snapshot, ok := s.snapshots[productID]
	if ok {
		delete(s.snapshots, productID)
	}
	return snapshot, ok, nil
}
