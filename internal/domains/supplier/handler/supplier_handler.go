package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/supplier/model"
	"shop-backend/internal/domains/supplier/service"
	"shop-backend/internal/shared/response"
)

type SupplierHandler struct {
	service service.ServiceInterface
}

func NewSupplierHandler(svc service.ServiceInterface) *SupplierHandler {
	return &SupplierHandler{service: svc}
}

// List handles GET /api/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, suppliers)
}

// Get handles GET /api/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, supplier)
}

// Create handles POST /api/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req model.SupplierRequest
	if !response.BindJSON(c, &req) {
		return
	}
	supplier, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, supplier)
}

// Update handles PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.SupplierRequest
	if !response.BindJSON(c, &req) {
		return
	}
	supplier, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, supplier)
}

// Delete handles DELETE /api/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
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
