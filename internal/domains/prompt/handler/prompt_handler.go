package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/domains/prompt/service"
	"shop-backend/internal/shared/response"
)

type PromptHandler struct {
	prompts    service.PromptService
	categories service.CategoryService
	slots      service.SlotService
}

func NewPromptHandler(prompts service.PromptService, categories service.CategoryService, slots service.SlotService) *PromptHandler {
	return &PromptHandler{prompts: prompts, categories: categories, slots: slots}
}

// optionalID reads an int64 path param, falling back to a query param.
// An absent or unparsable query value yields nil.
func optionalID(c *gin.Context, param, query string) (*int64, bool) {
	if c.Param(param) != "" {
		id, ok := response.ParseID(c, param)
		if !ok {
			return nil, false
		}
		return &id, true
	}
	if v, err := strconv.ParseInt(c.Query(query), 10, 64); err == nil {
		return &v, true
	}
	return nil, true
}

// List handles GET /api/prompts
func (h *PromptHandler) List(c *gin.Context) {
	prompts, err := h.prompts.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prompts)
}

// ListActive handles GET /api/prompts/active
func (h *PromptHandler) ListActive(c *gin.Context) {
	prompts, err := h.prompts.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prompts)
}

// Search handles GET /api/prompts/search?title=
func (h *PromptHandler) Search(c *gin.Context) {
	prompts, err := h.prompts.SearchByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prompts)
}

// Get handles GET /api/prompts/:id
func (h *PromptHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	prompt, err := h.prompts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prompt)
}

// Create handles POST /api/prompts
func (h *PromptHandler) Create(c *gin.Context) {
	var req model.CreatePromptRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prompt, err := h.prompts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prompt)
}

// Update handles PUT /api/prompts/:id
func (h *PromptHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePromptRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prompt, err := h.prompts.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prompt)
}

// Delete handles DELETE /api/prompts/:id
func (h *PromptHandler) Delete(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.prompts.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCategories handles GET /api/prompt-categories
func (h *PromptHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

// GetCategory handles GET /api/prompt-categories/:id
func (h *PromptHandler) GetCategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// CreateCategory handles POST /api/prompt-categories
func (h *PromptHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory handles PUT /api/prompt-categories/:id
func (h *PromptHandler) UpdateCategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// DeleteCategory handles DELETE /api/prompt-categories/:id
func (h *PromptHandler) DeleteCategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubcategories handles GET /api/prompt-subcategories?categoryId=
// and GET /api/prompt-categories/:id/subcategories.
func (h *PromptHandler) ListSubcategories(c *gin.Context) {
	categoryID, ok := optionalID(c, "id", "categoryId")
	if !ok {
		return
	}
	subcategories, err := h.categories.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategories)
}

// GetSubcategory handles GET /api/prompt-subcategories/:id
func (h *PromptHandler) GetSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	subcategory, err := h.categories.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategory)
}

// CreateSubcategory handles POST /api/prompt-subcategories
func (h *PromptHandler) CreateSubcategory(c *gin.Context) {
	var req model.CreateSubcategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	subcategory, err := h.categories.CreateSubcategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subcategory)
}

// UpdateSubcategory handles PUT /api/prompt-subcategories/:id
func (h *PromptHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateSubcategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	subcategory, err := h.categories.UpdateSubcategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subcategory)
}

// DeleteSubcategory handles DELETE /api/prompt-subcategories/:id
func (h *PromptHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.DeleteSubcategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSlotTypes handles GET /api/prompt-slot-types
func (h *PromptHandler) ListSlotTypes(c *gin.Context) {
	types, err := h.slots.ListTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, types)
}

// GetSlotType handles GET /api/prompt-slot-types/:id
func (h *PromptHandler) GetSlotType(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	slotType, err := h.slots.GetType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slotType)
}

// CreateSlotType handles POST /api/prompt-slot-types
func (h *PromptHandler) CreateSlotType(c *gin.Context) {
	var req model.CreateSlotTypeRequest
	if !response.BindJSON(c, &req) {
		return
	}
	slotType, err := h.slots.CreateType(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slotType)
}

// UpdateSlotType handles PUT /api/prompt-slot-types/:id
func (h *PromptHandler) UpdateSlotType(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateSlotTypeRequest
	if !response.BindJSON(c, &req) {
		return
	}
	slotType, err := h.slots.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slotType)
}

// DeleteSlotType handles DELETE /api/prompt-slot-types/:id
func (h *PromptHandler) DeleteSlotType(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.slots.DeleteType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSlotVariants handles GET /api/prompt-slot-variants?slotTypeId=
// and GET /api/prompt-slot-types/:id/variants.
func (h *PromptHandler) ListSlotVariants(c *gin.Context) {
	slotTypeID, ok := optionalID(c, "id", "slotTypeId")
	if !ok {
		return
	}
	variants, err := h.slots.ListVariants(c.Request.Context(), slotTypeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, variants)
}

// GetSlotVariant handles GET /api/prompt-slot-variants/:id
func (h *PromptHandler) GetSlotVariant(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	variant, err := h.slots.GetVariant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, variant)
}

// CreateSlotVariant handles POST /api/prompt-slot-variants
func (h *PromptHandler) CreateSlotVariant(c *gin.Context) {
	var req model.CreateSlotVariantRequest
	if !response.BindJSON(c, &req) {
		return
	}
	variant, err := h.slots.CreateVariant(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, variant)
}

// UpdateSlotVariant handles PUT /api/prompt-slot-variants/:id
func (h *PromptHandler) UpdateSlotVariant(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateSlotVariantRequest
	if !response.BindJSON(c, &req) {
		return
	}
	variant, err := h.slots.UpdateVariant(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, variant)
}

// DeleteSlotVariant handles DELETE /api/prompt-slot-variants/:id
func (h *PromptHandler) DeleteSlotVariant(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.slots.DeleteVariant(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
