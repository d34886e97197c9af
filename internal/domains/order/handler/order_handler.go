package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

// OrderHandler serves /api/orders for the signed-in user and
// /api/admin/orders for administrators.
type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(svc service.ServiceInterface) *OrderHandler {
	return &OrderHandler{service: svc}
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
	}
	return id, ok
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req model.CreateOrderRequest
	if !response.BindJSON(c, &req) {
		return
	}
	order, err := h.service.CreateFromCart(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// ListMine handles GET /api/orders?page=&size=
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := response.Pagination(c)
	orders, err := h.service.ListForUser(c.Request.Context(), userID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// GetMine handles GET /api/orders/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.service.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// List handles GET /api/admin/orders?status=&page=&size=
func (h *OrderHandler) List(c *gin.Context) {
	page, size := response.Pagination(c)
	orders, err := h.service.List(c.Request.Context(), c.Query("status"), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// Get handles GET /api/admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// UpdateStatus handles PUT /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// Delete handles DELETE /api/admin/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
