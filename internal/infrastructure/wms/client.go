package wms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wmsconnector/backend/internal/domain/wms"
)

const (
	// maxResponseSize limits the response body size to prevent memory
	// exhaustion
	maxResponseSize = 10 * 1024 * 1024

	// managementPathPrefix selects the management token scope
	managementPathPrefix = "/management"

	authTokenHeader = "X-Auth-Token"
)

// HTTPClient is the concrete warehouse API client. It selects the
// authorization token by path family: management-scope paths use the
// management token, everything else the store token.
type HTTPClient struct {
	config     *Config
	httpClient *http.Client
}

var _ wms.Client = (*HTTPClient)(nil)

// NewHTTPClient creates a warehouse API client from a validated
// configuration
func NewHTTPClient(config *Config) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout()) * time.Second,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Order endpoints
// ---------------------------------------------------------------------------

func (c *HTTPClient) CreateOrder(ctx context.Context, req wms.CreateOrderRequest) (*wms.CreateOrderResponse, error) {
	var resp wms.CreateOrderResponse
	if err := c.send(ctx, http.MethodPost, "/store/v2/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ShipOrder(ctx context.Context, remoteOrderID string) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/store/v2/orders/%s/ship", remoteOrderID), nil, nil)
}

func (c *HTTPClient) UpdateOrder(ctx context.Context, remoteOrderID string, req wms.UpdateOrderRequest) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/store/v2/orders/%s", remoteOrderID), req, nil)
}

func (c *HTTPClient) CancelOrder(ctx context.Context, remoteOrderID string) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/store/v2/orders/%s/cancel", remoteOrderID), nil, nil)
}

func (c *HTTPClient) GetOrderDetails(ctx context.Context, remoteOrderID string) (*wms.OrderDetails, error) {
	var resp wms.OrderDetails
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/store/v2/order/%s/details", remoteOrderID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ---------------------------------------------------------------------------
// Stock endpoints
// ---------------------------------------------------------------------------

func (c *HTTPClient) SellableStocks(ctx context.Context) ([]wms.StockItem, error) {
	basePath := fmt.Sprintf("/management/v2/warehouse/%s/stocks/sellable", c.config.WarehouseID)

	var items []wms.StockItem
	for page := 1; ; page++ {
		var resp stockListResponse
		if err := c.send(ctx, http.MethodGet, pagedPath(basePath, page), nil, &resp); err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Product endpoints
// ---------------------------------------------------------------------------

func (c *HTTPClient) CreateProduct(ctx context.Context, payload wms.ProductPayload) (*wms.ProductDetail, error) {
	var resp wms.ProductDetail
	if err := c.send(ctx, http.MethodPost, "/management/v2/products", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, remoteProductID string, update wms.ProductUpdate) error {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/management/v2/product/%s", remoteProductID), update, nil)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, remoteProductID string) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/management/v2/product/%s", remoteProductID), nil, nil)
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]wms.ProductSummary, error) {
	var items []wms.ProductSummary
	for page := 1; ; page++ {
		var resp productListResponse
		if err := c.send(ctx, http.MethodGet, pagedPath("/management/v2/products", page), nil, &resp); err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return items, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, remoteProductID string) (*wms.ProductDetail, error) {
	var resp wms.ProductDetail
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/management/v2/product/%s", remoteProductID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListManufacturers(ctx context.Context) ([]wms.Manufacturer, error) {
	var items []wms.Manufacturer
	for page := 1; ; page++ {
		var resp manufacturerListResponse
		if err := c.send(ctx, http.MethodGet, pagedPath("/management/v2/manufacturers", page), nil, &resp); err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// send performs one authenticated request against the warehouse API and
// decodes the JSON response into out when given. Transport failures map to
// *wms.TransportError, HTTP error statuses to *wms.APIError.
func (c *HTTPClient) send(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil && method != http.MethodGet {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wms api: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIBaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("wms api: failed to create request: %w", err)
	}

	req.Header.Set(authTokenHeader, c.tokenFor(path))
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &wms.TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &wms.TransportError{Message: err.Error()}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &wms.APIError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(resp.StatusCode, respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("wms api: failed to parse response: %w", err)
		}
	}
	return nil
}

// tokenFor picks the token scope by path family
func (c *HTTPClient) tokenFor(path string) string {
	if strings.HasPrefix(path, managementPathPrefix) {
		return c.config.ManagementToken
	}
	return c.config.StoreToken
}

// extractErrorMessage pulls a human-readable message out of an error
// response body. The warehouse puts it under "message" or "error"; anything
// unparsable falls back to the raw body.
func extractErrorMessage(status int, body []byte) string {
	if status == http.StatusUnauthorized {
		return "not authorized"
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return "no error message"
}

func pagedPath(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}
