package handler

import (
	checkoutapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/checkout"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles coupon selection and order placement
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// SelectCoupons picks the coupon set for the client's current cart total.
// The body may pin one coupon by code; the selector fills in the rest.
func (h *CheckoutHandler) SelectCoupons(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	var req checkoutapp.SelectCouponsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	selection, err := h.checkout.SelectCoupons(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, selection)
}

// PlaceOrder turns the cart into an order, consuming the reserved coupons
// and freezing line prices
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/coupons", h.SelectCoupons)
		checkout.POST("/orders", h.PlaceOrder)
	}
}
