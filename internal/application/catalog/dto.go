package catalog

import (
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListProductsRequest carries browsing parameters
type ListProductsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// ProductResponse is the read-side view of a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Code          string          `json:"code"`
	Author        string          `json:"author"`
	Publisher     string          `json:"publisher"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int64           `json:"stock_quantity"`
	Active        bool            `json:"active"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		Code:          p.Code,
		Author:        p.Author,
		Publisher:     p.Publisher,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
	}
}
