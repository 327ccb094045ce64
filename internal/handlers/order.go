// internal/handlers/order.go
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/utils"
)

// Deliverer marks orders delivered and notifies the customer.
type Deliverer interface {
	MarkDelivered(ctx context.Context, actorID, orderID int64) (*models.Order, error)
}

type OrderHandler struct {
	orderService *services.OrderService
	deliverer    Deliverer
}

func NewOrderHandler(orderService *services.OrderService, deliverer Deliverer) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		deliverer:    deliverer,
	}
}

// GET /admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
		"total": order.Total(),
	})
}

// POST /admin/orders/:id/deliver
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	adminID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.deliverer.MarkDelivered(c.Request.Context(), adminID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			utils.ForbiddenResponse(c, "")
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Order")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, "Order is already delivered")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

func parseOrderID(c *gin.Context) (int64, bool) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return 0, false
	}
	return orderID, true
}
