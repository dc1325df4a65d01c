package handler

import (
	orderapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/order"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order lifecycle and trade request endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// listFilter converts the query parameters into a repository filter
func listFilter(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter, nil
}

// List returns the client's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orders.ListByClient(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns one order with its frozen lines and applied coupons
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AdvanceStatus moves an order one step forward through its lifecycle
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.AdvanceStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RequestTrade opens a trade request for part of a delivered order line
func (h *OrderHandler) RequestTrade(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	var req orderapp.RequestTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trade, err := h.orders.RequestTrade(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, trade)
}

// ListTrades returns the client's trade requests
func (h *OrderHandler) ListTrades(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trades, err := h.orders.ListTradesByClient(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trades)
}

// GetTrade returns one trade request
func (h *OrderHandler) GetTrade(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trade ID format")
		return
	}

	trade, err := h.orders.GetTrade(c.Request.Context(), tradeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trade)
}

// ApproveTrade approves a pending trade request
func (h *OrderHandler) ApproveTrade(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trade ID format")
		return
	}

	trade, err := h.orders.ApproveTrade(c.Request.Context(), tradeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trade)
}

// GenerateTradeCoupon mints the refund coupon for an approved trade
func (h *OrderHandler) GenerateTradeCoupon(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trade ID format")
		return
	}

	tradeCoupon, err := h.orders.GenerateTradeCoupon(c.Request.Context(), tradeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tradeCoupon)
}

// ListCoupons returns every coupon the client holds
func (h *OrderHandler) ListCoupons(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Client-ID header")
		return
	}

	coupons, err := h.orders.ListCouponsByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupons)
}

// RegisterRoutes registers order and trade routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.PATCH("/:id/status", h.AdvanceStatus)
	}

	trades := rg.Group("/trades")
	{
		trades.POST("", h.RequestTrade)
		trades.GET("", h.ListTrades)
		trades.GET("/:id", h.GetTrade)
		trades.POST("/:id/approve", h.ApproveTrade)
		trades.POST("/:id/coupon", h.GenerateTradeCoupon)
	}

	rg.GET("/coupons", h.ListCoupons)
}
