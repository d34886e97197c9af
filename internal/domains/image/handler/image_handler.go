package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/domains/image/service"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

type ImageHandler struct {
	service  service.ServiceInterface
	maxBytes int64
}

func NewImageHandler(svc service.ServiceInterface, maxBytes int64) *ImageHandler {
	return &ImageHandler{service: svc, maxBytes: maxBytes}
}

// parseCrop reads cropX, cropY, cropWidth and cropHeight. All four must be
// present for a crop to apply.
func parseCrop(c *gin.Context) (*storage.CropArea, bool) {
	names := []string{"cropX", "cropY", "cropWidth", "cropHeight"}
	values := make([]int, len(names))
	present := 0
	for i, name := range names {
		raw := c.PostForm(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid "+name+": "+raw)
			return nil, false
		}
		values[i] = v
		present++
	}
	if present == 0 {
		return nil, true
	}
	if present != len(names) {
		response.BadRequest(c, "cropX, cropY, cropWidth and cropHeight must be given together")
		return nil, false
	}
	return &storage.CropArea{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, true
}

// Upload handles POST /api/images (multipart: file, imageType, altText, crop*)
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file part: "+err.Error())
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		response.BadRequest(c, "File exceeds the maximum size of "+strconv.FormatInt(h.maxBytes, 10)+" bytes")
		return
	}

	crop, ok := parseCrop(c)
	if !ok {
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := model.UploadRequest{ImageType: model.ImageType(c.PostForm("imageType")), Crop: crop}
	if alt, ok := c.GetPostForm("altText"); ok {
		req.AltText = &alt
	}

	var userID *int64
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	img, err := h.service.Upload(c.Request.Context(), userID, fileHeader.Filename, data, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, img)
}

// List handles GET /api/images?imageType=&userId=&page=&size=
func (h *ImageHandler) List(c *gin.Context) {
	filter := model.ListFilter{ImageType: model.ImageType(c.Query("imageType"))}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid userId: "+raw)
			return
		}
		filter.UserID = &id
	}

	page, size := response.Pagination(c)
	images, err := h.service.List(c.Request.Context(), filter, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, images)
}

// Get handles GET /api/images/:id
func (h *ImageHandler) Get(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	img, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, img)
}

// Content handles GET /api/images/:id/content?thumbnail=true
func (h *ImageHandler) Content(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	thumbnail, _ := strconv.ParseBool(c.DefaultQuery("thumbnail", "false"))

	data, contentType, err := h.service.Content(c.Request.Context(), id, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}

// Update handles PUT /api/images/:id
func (h *ImageHandler) Update(c *gin.Context) {
	id, ok := response.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateImageRequest
	if !response.BindJSON(c, &req) {
		return
	}
	img, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, img)
}

// Delete handles DELETE /api/images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
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
