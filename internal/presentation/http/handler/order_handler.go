package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/request"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// OrderHandler handles tab lifecycle and line item requests. Item
// mutations always apply to the active tab; the client selects a tab
// first and edits it until it is paid or canceled.
type OrderHandler struct {
	tillService *service.TillService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(tillService *service.TillService) *OrderHandler {
	return &OrderHandler{tillService: tillService}
}

// CreateOrder opens a new tab and makes it active
// @Summary Create order
// @Description Open a new tab; a blank name gets a generated code
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateOrderRequest true "Tab name"
// @Success 201 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.tillService.CreateOrder(c.Request.Context(), GetOperatorID(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tab opened", response.NewOrderResponse(*order))
}

// ListOrders returns the open or paid tabs for the current date
// @Summary List orders
// @Description Live view of tabs, filtered by status
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param status query string false "Open or Paid" default(Open)
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	uid := GetOperatorID(c)

	status := c.DefaultQuery("status", string(enum.OrderStatusOpen))
	parsed, err := enum.ParseOrderStatus(status)
	if err != nil {
		response.BadRequest(c, "Unknown order status")
		return
	}

	var orders []response.OrderResponse
	switch parsed {
	case enum.OrderStatusPaid:
		paid, err := h.tillService.PaidOrders(uid)
		if err != nil {
			response.Error(c, err)
			return
		}
		orders = response.NewOrderListResponse(paid)
	default:
		open, err := h.tillService.OpenOrders(uid)
		if err != nil {
			response.Error(c, err)
			return
		}
		orders = response.NewOrderListResponse(open)
	}

	response.OK(c, "Orders retrieved", gin.H{"orders": orders})
}

// SelectOrder makes an open tab the active one
// @Summary Select order
// @Description Load an open tab for editing
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/select [post]
func (h *OrderHandler) SelectOrder(c *gin.Context) {
	err := h.tillService.SelectOrder(c.Request.Context(), GetOperatorID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tab selected", nil)
}

// DeleteOrder removes a tab outright, open or paid
// @Summary Delete order
// @Description Delete a tab; it vanishes from all reporting
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Failure 404 {object} response.APIResponse
// @Failure 428 {object} response.APIResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var conf request.Confirmation
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&conf); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	err := h.tillService.DeleteOrder(c.Request.Context(), GetOperatorID(c), c.Param("id"), toConfirmation(conf))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tab deleted", nil)
}

// AddItem appends a line item to the active tab
// @Summary Add item
// @Description Append a line item to the active tab
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.AddItemRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /till/items [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tillService.AddItem(c.Request.Context(), GetOperatorID(c), req.Name, money.FromDecimal(req.Price))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", nil)
}

// RemoveItem removes one line item from the active tab by position
// @Summary Remove item
// @Description Remove a line item from the active tab
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RemoveItemRequest true "Item index and confirmation"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 428 {object} response.APIResponse
// @Router /till/items/remove [post]
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	var req request.RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tillService.RemoveItem(c.Request.Context(), GetOperatorID(c), *req.Index, toConfirmation(req.Confirmation))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", nil)
}

// ClearItems empties the active tab
// @Summary Clear items
// @Description Remove every line item from the active tab
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Failure 428 {object} response.APIResponse
// @Router /till/items [delete]
func (h *OrderHandler) ClearItems(c *gin.Context) {
	var conf request.Confirmation
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&conf); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	err := h.tillService.ClearItems(c.Request.Context(), GetOperatorID(c), toConfirmation(conf))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tab cleared", nil)
}

// Pay settles the active tab
// @Summary Pay
// @Description Settle the active tab with cash or card
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PayRequest true "Payment method and confirmation"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 428 {object} response.APIResponse
// @Router /till/pay [post]
func (h *OrderHandler) Pay(c *gin.Context) {
	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	order, err := h.tillService.Pay(c.Request.Context(), GetOperatorID(c), method, toConfirmation(req.Confirmation))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", response.NewOrderResponse(*order))
}

// Cancel deletes the active tab
// @Summary Cancel
// @Description Delete the active tab outright
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Failure 428 {object} response.APIResponse
// @Router /till/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	var conf request.Confirmation
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&conf); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	err := h.tillService.Cancel(c.Request.Context(), GetOperatorID(c), toConfirmation(conf))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tab canceled", nil)
}
