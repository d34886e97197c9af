package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/service"
	"shop-backend/internal/shared/response"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List handles GET /api/article-categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

// Get handles GET /api/article-categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	category, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// Create handles POST /api/article-categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Update handles PUT /api/article-categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// Delete handles DELETE /api/article-categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
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

// ListSubcategories handles GET /api/article-subcategories?categoryId=
// and GET /api/article-categories/:id/subcategories.
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	var categoryID *int64
	if c.Param("id") != "" {
		id, ok := response.ParseID(c, "id")
		if !ok {
			return
		}
		categoryID = &id
	} else if v, err := strconv.ParseInt(c.Query("categoryId"), 10, 64); err == nil {
		categoryID = &v
	}

	subcategories, err := h.service.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategories)
}

// GetSubcategory handles GET /api/article-subcategories/:id
func (h *CategoryHandler) GetSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	subcategory, err := h.service.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategory)
}

// CreateSubcategory handles POST /api/article-subcategories
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	var req model.CreateSubcategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	subcategory, err := h.service.CreateSubcategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subcategory)
}

// UpdateSubcategory handles PUT /api/article-subcategories/:id
func (h *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateSubcategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	subcategory, err := h.service.UpdateSubcategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategory)
}

// DeleteSubcategory handles DELETE /api/article-subcategories/:id
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteSubcategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
