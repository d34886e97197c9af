package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/domains/vat/service"
	"shop-backend/internal/shared/response"
)

type VatHandler struct {
	service service.ServiceInterface
}

func NewVatHandler(svc service.ServiceInterface) *VatHandler {
	return &VatHandler{service: svc}
}

func (h *VatHandler) List(c *gin.Context) {
	vats, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vats)
}

func (h *VatHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	vat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vat)
}

// GetDefault handles GET /api/vat/default
func (h *VatHandler) GetDefault(c *gin.Context) {
	vat, err := h.service.GetDefault(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vat)
}

func (h *VatHandler) Create(c *gin.Context) {
	var req model.CreateVatRequest
	if !response.BindJSON(c, &req) {
		return
	}
	vat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vat)
}

func (h *VatHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateVatRequest
	if !response.BindJSON(c, &req) {
		return
	}
	vat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vat)
}

func (h *VatHandler) Delete(c *gin.Context) {
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
