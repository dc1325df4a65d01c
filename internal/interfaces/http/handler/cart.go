package handler

import (
	cartapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints. Every route requires the X-Client-ID
// header since carts are keyed by client.
type CartHandler struct {
	BaseHandler
	cart *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *cartapp.Service) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get returns the client's consolidated cart with its recomputed total
func (h *CartHandler) Get(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	cart, err := h.cart.GetCart(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem reserves stock and adds a product to the cart, returning the
// updated cart with its recomputed total
func (h *CartHandler) AddItem(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cart.AddItem(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, cart)
}

// UpdateQuantity sets the cart quantity for a product, returning the updated
// cart with its recomputed total
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cart.UpdateQuantity(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem drops a product from the cart and releases its stock, returning
// the updated cart with its recomputed total
func (h *CartHandler) RemoveItem(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	var req cartapp.RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cart.RemoveItem(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Empty clears the cart, releasing stock and reserved coupons
func (h *CartHandler) Empty(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	if err := h.cart.EmptyCart(c.Request.Context(), clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items", h.UpdateQuantity)
		cart.DELETE("/items", h.RemoveItem)
		cart.DELETE("", h.Empty)
	}
}
