package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/pdf/model"
	"shop-backend/internal/domains/pdf/service"
	"shop-backend/internal/shared/response"
)

type PdfHandler struct {
	service service.ServiceInterface
}

func NewPdfHandler(svc service.ServiceInterface) *PdfHandler {
	return &PdfHandler{service: svc}
}

func optionalID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name+": "+raw)
		return nil, false
	}
	return &id, true
}

// List handles GET /api/pdfs?kind=&orderId=&articleId=&page=&size=
func (h *PdfHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if raw := c.Query("kind"); raw != "" {
		if filter.Kind = model.ParseKind(raw); filter.Kind == "" {
			response.Error(c, model.ErrInvalidKind(raw))
			return
		}
	}
	var ok bool
	if filter.OrderID, ok = optionalID(c, "orderId"); !ok {
		return
	}
	if filter.ArticleID, ok = optionalID(c, "articleId"); !ok {
		return
	}

	page, size := response.Pagination(c)
	docs, err := h.service.List(c.Request.Context(), filter, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, docs)
}

// Get handles GET /api/pdfs/:id
func (h *PdfHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

// Content handles GET /api/pdfs/:id/content
func (h *PdfHandler) Content(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	data, filename, err := h.service.Content(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GenerateForOrder handles POST /api/pdfs/orders/:orderId
func (h *PdfHandler) GenerateForOrder(c *gin.Context) {
	orderID, ok := response.ParseID(c, "orderId")
	if !ok {
		return
	}
	doc, err := h.service.GenerateForOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// GenerateForArticle handles POST /api/pdfs/articles/:articleId with an
// optional {"imageId": n} body.
func (h *PdfHandler) GenerateForArticle(c *gin.Context) {
	articleID, ok := response.ParseID(c, "articleId")
	if !ok {
		return
	}
	var req model.GenerateArticleRequest
	if c.Request.ContentLength > 0 && !response.BindJSON(c, &req) {
		return
	}
	doc, err := h.service.GenerateForArticle(c.Request.Context(), articleID, req.ImageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Delete handles DELETE /api/pdfs/:id
func (h *PdfHandler) Delete(c *gin.Context) {
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
