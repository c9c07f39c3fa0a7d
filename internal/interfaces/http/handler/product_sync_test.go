package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/wms"
	"github.com/wmsconnector/backend/internal/interfaces/http/dto"
)

type productHandlerFixture struct {
	products  *MockProductRepository
	client    *MockWMSClient
	snapshots *snapshotMap
	engine    *gin.Engine
}

func newProductHandlerFixture(t *testing.T) *productHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := new(MockProductRepository)
	client := new(MockWMSClient)
	snapshots := newSnapshotMap()
	logger := zap.NewNop()

	productService := syncapp.NewProductSyncService(products, client, snapshots, &noticeRecorder{}, logger)

	engine := gin.New()
	handler := NewProductSyncHandler(productService)
	handler.RegisterRoutes(engine.Group("/api/v1"))

	return &productHandlerFixture{products: products, client: client, snapshots: snapshots, engine: engine}
}

func (f *productHandlerFixture) serve(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	f.engine.ServeHTTP(w, req)
	return w
}

func testProduct(id uuid.UUID) *shop.Product {
	return &shop.Product{
		ID:           id,
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

func TestProductSyncHandler_TwoPhaseChange(t *testing.T) {
	t.Run("begin then commit creates the product remotely", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)
		productID := uuid.New()
		product := testProduct(productID)

		fixture.products.On("FindByID", mock.Anything, productID).Return(product, nil)
		fixture.products.On("Save", mock.Anything, mock.Anything).Return(nil)
		fixture.client.On("CreateProduct", mock.Anything, mock.Anything).
			Return(&wms.ProductDetail{ID: 42}, nil)

		begin := fixture.serve("POST", "/api/v1/products/"+productID.String()+"/begin-change")
		require.Equal(t, http.StatusOK, begin.Code)

		// simulate the shop save assigning no remote marker yet
		commit := fixture.serve("POST", "/api/v1/products/"+productID.String()+"/commit-change")
		require.Equal(t, http.StatusOK, commit.Code)

		fixture.client.AssertCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("invalid product ID is a bad request", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)

		w := fixture.serve("POST", "/api/v1/products/not-a-uuid/begin-change")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete product maps to 422 with field names", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)
		productID := uuid.New()
		product := testProduct(productID)
		product.Weight = decimal.Zero

		fixture.products.On("FindByID", mock.Anything, productID).Return(product, nil)

		begin := fixture.serve("POST", "/api/v1/products/"+productID.String()+"/begin-change")
		require.Equal(t, http.StatusOK, begin.Code)

		commit := fixture.serve("POST", "/api/v1/products/"+productID.String()+"/commit-change")

		assert.Equal(t, http.StatusUnprocessableEntity, commit.Code)
		resp := decodeResponse(t, commit)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "weight")
		fixture.client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductSyncHandler_DeleteProduct(t *testing.T) {
	t.Run("deletes a synced product", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)
		productID := uuid.New()
		product := testProduct(productID)
		require.NoError(t, product.MarkSyncedToWMS("42"))

		fixture.products.On("FindByID", mock.Anything, productID).Return(product, nil)
		fixture.products.On("Save", mock.Anything, mock.Anything).Return(nil)
		fixture.client.On("DeleteProduct", mock.Anything, "42").Return(nil)

		w := fixture.serve("DELETE", "/api/v1/products/"+productID.String())

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unsynced product maps to 409", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)
		productID := uuid.New()

		fixture.products.On("FindByID", mock.Anything, productID).Return(testProduct(productID), nil)

		w := fixture.serve("DELETE", "/api/v1/products/"+productID.String())

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotSynced, resp.Error.Code)
	})
}

func TestProductSyncHandler_ListManufacturers(t *testing.T) {
	t.Run("returns the warehouse catalogue", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)

		fixture.client.On("ListManufacturers", mock.Anything).Return([]wms.Manufacturer{
			{ID: 1, Name: "ACME"},
			{ID: 2, Name: "Globex"},
		}, nil)

		w := fixture.serve("GET", "/api/v1/manufacturers")

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool               `json:"success"`
			Data    []wms.Manufacturer `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "ACME", resp.Data[0].Name)
	})

	t.Run("upstream rejection maps to 502", func(t *testing.T) {
		fixture := newProductHandlerFixture(t)

		fixture.client.On("ListManufacturers", mock.Anything).
			Return(nil, &wms.APIError{Status: 500, Message: "boom"})

		w := fixture.serve("GET", "/api/v1/manufacturers")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeUpstream, resp.Error.Code)
	})
}
