package wms

import "errors"

// defaultTimeoutSeconds is the HTTP request timeout applied when the
// configuration does not set one
const defaultTimeoutSeconds = 15

// Errors for WMS configuration
var (
	ErrConfigMissingBaseURL         = errors.New("wms: API base URL is required")
	ErrConfigMissingWarehouseID     = errors.New("wms: warehouse ID is required")
	ErrConfigMissingWarehouseCode   = errors.New("wms: warehouse code is required")
	ErrConfigMissingStoreToken      = errors.New("wms: store token is required")
	ErrConfigMissingManagementToken = errors.New("wms: management token is required")
)

// Config holds the connection settings for the warehouse API. All five
// values must be present for the integration to be wired at all; a partial
// configuration disables the whole integration.
type Config struct {
	// APIBaseURL is the base URL of the warehouse API
	APIBaseURL string
	// WarehouseID identifies the warehouse in management-scope paths
	WarehouseID string
	// WarehouseCode is the code sent on order payloads
	WarehouseCode string
	// StoreToken authorizes store-scope endpoints
	StoreToken string
	// ManagementToken authorizes management-scope endpoints
	ManagementToken string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a Config with the default timeout
func NewConfig(baseURL, warehouseID, warehouseCode, storeToken, managementToken string) *Config {
	return &Config{
		APIBaseURL:      baseURL,
		WarehouseID:     warehouseID,
		WarehouseCode:   warehouseCode,
		StoreToken:      storeToken,
		ManagementToken: managementToken,
		TimeoutSeconds:  defaultTimeoutSeconds,
	}
}

// Validate returns the first missing required value
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.WarehouseID == "" {
		return ErrConfigMissingWarehouseID
	}
	if c.WarehouseCode == "" {
		return ErrConfigMissingWarehouseCode
	}
	if c.StoreToken == "" {
		return ErrConfigMissingStoreToken
	}
	if c.ManagementToken == "" {
		return ErrConfigMissingManagementToken
	}
	return nil
}

// Complete reports whether every required value is present. The integration
// is fail-closed: an incomplete configuration keeps every trigger unwired.
func (c *Config) Complete() bool {
	return c.Validate() == nil
}

// Timeout returns the configured timeout in seconds, falling back to the
// default when unset
func (c *Config) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds
	}
	return c.TimeoutSeconds
}
