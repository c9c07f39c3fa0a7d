package wms

import "github.com/wmsconnector/backend/internal/domain/wms"

// paginationMeta is the shared pagination envelope of listing endpoints
type paginationMeta struct {
	Pagination struct {
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type stockListResponse struct {
	Items []wms.StockItem `json:"items"`
	Meta  paginationMeta  `json:"meta"`
}

type productListResponse struct {
	Items []wms.ProductSummary `json:"items"`
	Meta  paginationMeta       `json:"meta"`
}

type manufacturerListResponse struct {
	Items []wms.Manufacturer `json:"items"`
	Meta  paginationMeta     `json:"meta"`
}

// errorBody is the JSON shape of a warehouse error response. Either key may
// carry the message.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
