package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/cart/model"
	"shop-backend/internal/domains/cart/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

// CartHandler serves the authenticated user's own cart.
type CartHandler struct {
	service service.ServiceInterface
}

func NewCartHandler(svc service.ServiceInterface) *CartHandler {
	return &CartHandler{service: svc}
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
	}
	return id, ok
}

// Get handles GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// Summary handles GET /api/cart/summary
func (h *CartHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req model.AddItemRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cart, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cart)
}

// UpdateItem handles PUT /api/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateItemRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cart, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// RemoveItem handles DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	cart, err := h.service.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.service.Clear(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}
