package handler

import (
	"net/http"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /api/orders/: orders where the caller is the
// customer or the business owner.
func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListForUser(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]entity.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, orders[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

// Create handles POST /api/orders/, customer users only.
func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input entity.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, entity.FieldErrors{"offer_detail_id": {"This field is required."}})
		return
	}

	order, err := h.orderService.Create(user, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order.Response())
}

// Get handles GET /api/orders/:id/ for order participants and staff.
func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Order not found.")
		return
	}

	order, err := h.orderService.Get(user, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order.Response())
}

// PatchStatus handles PATCH /api/orders/:id/: only the business owner
// or staff may move the status.
func (h *OrderHandler) PatchStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Order not found.")
		return
	}

	var input entity.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, entity.FieldErrors{"status": {"This field is required."}})
		return
	}

	order, err := h.orderService.UpdateStatus(user, orderID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order.Response())
}

// Delete handles DELETE /api/orders/:id/, staff only.
func (h *OrderHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Order not found.")
		return
	}

	if err := h.orderService.Delete(user, orderID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// OrderCount handles GET /api/order-count/:business_user_id/.
func (h *OrderHandler) OrderCount(c *gin.Context) {
	h.count(c, entity.OrderStatusInProgress, "order_count")
}

// CompletedOrderCount handles GET /api/completed-order-count/:business_user_id/.
func (h *OrderHandler) CompletedOrderCount(c *gin.Context) {
	h.count(c, entity.OrderStatusCompleted, "completed_order_count")
}

func (h *OrderHandler) count(c *gin.Context, status, field string) {
	businessUserID, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Business user not found.")
		return
	}

	count, err := h.orderService.CountForBusiness(businessUserID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{field: count})
}
