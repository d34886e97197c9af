package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/country/model"
	"shop-backend/internal/domains/country/service"
	"shop-backend/internal/shared/response"
)

type CountryHandler struct {
	service service.ServiceInterface
}

func NewCountryHandler(svc service.ServiceInterface) *CountryHandler {
	return &CountryHandler{service: svc}
}

// List handles GET /api/countries
func (h *CountryHandler) List(c *gin.Context) {
	countries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, countries)
}

// Get handles GET /api/countries/:id
func (h *CountryHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	country, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, country)
}

// Create handles POST /api/countries
func (h *CountryHandler) Create(c *gin.Context) {
	var req model.CreateCountryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	country, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, country)
}

// Update handles PUT /api/countries/:id
func (h *CountryHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCountryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	country, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, country)
}

// Delete handles DELETE /api/countries/:id
func (h *CountryHandler) Delete(c *gin.Context) {
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
