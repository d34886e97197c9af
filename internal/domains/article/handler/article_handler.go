package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/service"
	"shop-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ArticleHandler struct {
	service service.ServiceInterface
}

func NewArticleHandler(svc service.ServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// filterFromQuery reads type, active, categoryId, subcategoryId and search.
// Unparsable values are ignored.
func filterFromQuery(c *gin.Context) model.ListFilter {
	filter := model.ListFilter{
		ArticleType: model.ArticleType(c.Query("type")),
		Search:      c.Query("search"),
	}
	if v, err := strconv.ParseBool(c.Query("active")); err == nil {
		filter.Active = &v
	}
	if v, err := strconv.ParseInt(c.Query("categoryId"), 10, 64); err == nil {
		filter.CategoryID = &v
	}
	if v, err := strconv.ParseInt(c.Query("subcategoryId"), 10, 64); err == nil {
		filter.SubcategoryID = &v
	}
	return filter
}

// List handles GET /api/articles?type=&active=&categoryId=&subcategoryId=&search=&page=&size=
func (h *ArticleHandler) List(c *gin.Context) {
	page, size := response.Pagination(c)
	articles, err := h.service.List(c.Request.Context(), filterFromQuery(c), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, articles)
}

// Export handles GET /api/articles/export
func (h *ArticleHandler) Export(c *gin.Context) {
	data, err := h.service.ExportExcel(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("articles_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Get handles GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, article)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req model.CreateArticleRequest
	if !response.BindJSON(c, &req) {
		return
	}
	article, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, article)
}

// Update handles PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateArticleRequest
	if !response.BindJSON(c, &req) {
		return
	}
	article, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
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
