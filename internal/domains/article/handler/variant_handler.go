package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/service"
	"shop-backend/internal/shared/response"
)

type VariantHandler struct {
	service service.VariantService
}

func NewVariantHandler(svc service.VariantService) *VariantHandler {
	return &VariantHandler{service: svc}
}

// List handles GET /api/articles/:id/mug-variants?includeInactive=
func (h *VariantHandler) List(c *gin.Context) {
	articleID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	variants, err := h.service.List(c.Request.Context(), articleID, c.Query("includeInactive") != "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, variants)
}

// Create handles POST /api/articles/:id/mug-variants
func (h *VariantHandler) Create(c *gin.Context) {
	articleID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.CreateMugVariantRequest
	if !response.BindJSON(c, &req) {
		return
	}
	variant, err := h.service.Create(c.Request.Context(), articleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, variant)
}

// Update handles PUT /api/articles/:id/mug-variants/:variantId
func (h *VariantHandler) Update(c *gin.Context) {
	articleID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := response.ParseID(c, "variantId")
	if !ok {
		return
	}
	var req model.UpdateMugVariantRequest
	if !response.BindJSON(c, &req) {
		return
	}
	variant, err := h.service.Update(c.Request.Context(), articleID, variantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, variant)
}

// Delete handles DELETE /api/articles/:id/mug-variants/:variantId
func (h *VariantHandler) Delete(c *gin.Context) {
	articleID, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := response.ParseID(c, "variantId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), articleID, variantID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
