package cart

import (
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	domaincart "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest represents a request to set a cart line's quantity
type UpdateQuantityRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	TargetQuantity int64     `json:"target_quantity" binding:"required,min=1"`
}

// RemoveItemRequest represents a request to drop a product from the cart
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// LineResponse represents one cart line with its priced total
type LineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse represents a client's cart with its recomputed total
type CartResponse struct {
	ClientID uuid.UUID       `json:"client_id"`
	Lines    []LineResponse  `json:"lines"`
	Total    decimal.Decimal `json:"total"`
}

// ToLineResponse builds a line response from a consolidated line and its product
func ToLineResponse(line *domaincart.Line, product *catalog.Product) LineResponse {
	total := product.UnitPriceMoney().MultiplyByInt(line.Quantity)
	return LineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		Title:     product.Title,
		UnitPrice: product.UnitPrice,
		Quantity:  line.Quantity,
		LineTotal: total.Amount(),
	}
}
