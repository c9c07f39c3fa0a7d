package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/wms"
	"github.com/wmsconnector/backend/internal/interfaces/http/dto"
)

type orderHandlerFixture struct {
	orders   *MockOrderRepository
	products *MockProductRepository
	client   *MockWMSClient
	engine   *gin.Engine
}

func newOrderHandlerFixture(t *testing.T) *orderHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	client := new(MockWMSClient)
	logger := zap.NewNop()

	stockService := syncapp.NewStockSyncService(products, client, logger)
	orderService := syncapp.NewOrderSyncService(orders, client, stockService, &noticeRecorder{}, "WH-MAIN", logger)

	engine := gin.New()
	handler := NewOrderSyncHandler(orderService)
	handler.RegisterRoutes(engine.Group("/api/v1"))

	return &orderHandlerFixture{orders: orders, products: products, client: client, engine: engine}
}

// expectStockPull satisfies the stock pull that follows every remote order
// mutation
func (f *orderHandlerFixture) expectStockPull() {
	f.client.On("SellableStocks", mock.Anything).Return([]wms.StockItem{}, nil)
	f.products.On("FindAllSellable", mock.Anything).Return([]shop.Product{}, nil)
}

func (f *orderHandlerFixture) serve(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	f.engine.ServeHTTP(w, req)
	return w
}

func testOrder(id uuid.UUID) *shop.Order {
	return &shop.Order{
		ID:     id,
		Number: "1001",
		Lines:  []shop.OrderLine{{SKU: "CUP-01", Quantity: 2}},
		ShippingMethod: &shop.ShippingMethod{
			ID:   "dpd",
			Kind: shop.ShippingMethodCourier,
		},
		ShippingAddress: shop.ShippingAddress{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Line1:     "Main Street 1",
			City:      "Warsaw",
			Zip:       "00-001",
			Country:   "PL",
		},
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOrderSyncHandler_CreateOrder(t *testing.T) {
	t.Run("syncs an order", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		fixture.orders.On("FindByID", mock.Anything, orderID).Return(testOrder(orderID), nil)
		fixture.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		fixture.client.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&wms.CreateOrderResponse{ID: 555}, nil)
		fixture.client.On("ShipOrder", mock.Anything, "555").Return(nil)
		fixture.expectStockPull()

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/sync")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("invalid order ID is a bad request", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)

		w := fixture.serve("POST", "/api/v1/orders/not-a-uuid/sync")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("unknown order maps to 404", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		fixture.orders.On("FindByID", mock.Anything, orderID).Return(nil, shop.ErrOrderNotFound)

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/sync")

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("already synced order maps to 409", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		order := testOrder(orderID)
		require.NoError(t, order.MarkSyncedToWMS("555"))
		fixture.orders.On("FindByID", mock.Anything, orderID).Return(order, nil)

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/sync")

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeAlreadySynced, resp.Error.Code)
	})

	t.Run("order without shipping method maps to 422", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		order := testOrder(orderID)
		order.ShippingMethod = nil
		fixture.orders.On("FindByID", mock.Anything, orderID).Return(order, nil)

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/sync")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})

	t.Run("transport failure maps to 502", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		fixture.orders.On("FindByID", mock.Anything, orderID).Return(testOrder(orderID), nil)
		fixture.client.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, &wms.TransportError{Message: "connection refused"})

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/sync")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeUpstreamUnavailable, resp.Error.Code)
	})
}

func TestOrderSyncHandler_OrderStatuses(t *testing.T) {
	t.Run("missing ids parameter is a bad request", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)

		w := fixture.serve("GET", "/api/v1/orders/statuses")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)

		w := fixture.serve("GET", "/api/v1/orders/statuses?ids=not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("resolves statuses per order", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		syncedID := uuid.New()
		unsyncedID := uuid.New()

		synced := testOrder(syncedID)
		require.NoError(t, synced.MarkSyncedToWMS("555"))
		fixture.orders.On("FindByID", mock.Anything, syncedID).Return(synced, nil)
		fixture.orders.On("FindByID", mock.Anything, unsyncedID).Return(testOrder(unsyncedID), nil)
		fixture.client.On("GetOrderDetails", mock.Anything, "555").
			Return(&wms.OrderDetails{ID: 555, Status: "partially-shipped"}, nil)

		w := fixture.serve("GET", "/api/v1/orders/statuses?ids="+syncedID.String()+","+unsyncedID.String())

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                        `json:"success"`
			Data    []syncapp.OrderStatusResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Partially Shipped", resp.Data[0].Status)
		assert.Equal(t, "not applicable", resp.Data[1].Status)
	})
}

func TestOrderSyncHandler_CancelOrder(t *testing.T) {
	t.Run("cancel of an unsynced order succeeds silently", func(t *testing.T) {
		fixture := newOrderHandlerFixture(t)
		orderID := uuid.New()

		fixture.orders.On("FindByID", mock.Anything, orderID).Return(testOrder(orderID), nil)

		w := fixture.serve("POST", "/api/v1/orders/"+orderID.String()+"/cancel")

		assert.Equal(t, http.StatusOK, w.Code)
		fixture.client.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
	})
}
