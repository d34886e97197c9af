package model

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared/utils"
)

type ImageType string

const (
	ImageTypePublic        ImageType = "PUBLIC"
	ImageTypePrivate       ImageType = "PRIVATE"
	ImageTypePromptExample ImageType = "PROMPT_EXAMPLE"
	ImageTypeGenerated     ImageType = "GENERATED"
)

var imageTypes = []interface{}{ImageTypePublic, ImageTypePrivate, ImageTypePromptExample, ImageTypeGenerated}

var imageTypeRule = validation.In(imageTypes...).Error("must be PUBLIC, PRIVATE, PROMPT_EXAMPLE or GENERATED")

// Image is a stored PNG. Uploads are converted to PNG regardless of the
// original format.
type Image struct {
	ID               int64
	Filename         string
	OriginalFilename string
	ContentType      string
	Size             int64
	Width            int
	Height           int
	ImageType        ImageType
	UserID           *int64
	AltText          *string
	StorageKey       string
	ThumbnailKey     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UploadRequest carries the non-file multipart fields of an upload.
type UploadRequest struct {
	ImageType ImageType
	AltText   *string
	Crop      *storage.CropArea
}

func (r UploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageType, validation.Required, imageTypeRule),
		validation.Field(&r.AltText, validation.Length(0, 500)),
	)
}

func (r *UploadRequest) Normalize() {
	r.ImageType = ImageType(strings.ToUpper(strings.TrimSpace(string(r.ImageType))))
	r.AltText = utils.TrimPtr(r.AltText)
}

type UpdateImageRequest struct {
	AltText   *string    `json:"altText"`
	ImageType *ImageType `json:"imageType"`
}

func (r UpdateImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AltText, validation.Length(0, 500)),
		validation.Field(&r.ImageType, imageTypeRule),
	)
}

func (r *UpdateImageRequest) Normalize() {
	if r.ImageType != nil {
		t := ImageType(strings.ToUpper(strings.TrimSpace(string(*r.ImageType))))
		r.ImageType = &t
	}
}

type ListFilter struct {
	ImageType ImageType
	UserID    *int64
	Limit     int
	Offset    int
}

type ImageResponse struct {
	ID               int64     `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	ContentType      string    `json:"contentType"`
	Size             int64     `json:"size"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	ImageType        ImageType `json:"imageType"`
	UserID           *int64    `json:"userId"`
	AltText          *string   `json:"altText"`
	URL              string    `json:"url"`
	ThumbnailURL     *string   `json:"thumbnailUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (i *Image) ToResponse() ImageResponse {
	content := "/api/images/" + strconv.FormatInt(i.ID, 10) + "/content"
	resp := ImageResponse{
		ID:               i.ID,
		Filename:         i.Filename,
		OriginalFilename: i.OriginalFilename,
		ContentType:      i.ContentType,
		Size:             i.Size,
		Width:            i.Width,
		Height:           i.Height,
		ImageType:        i.ImageType,
		UserID:           i.UserID,
		AltText:          i.AltText,
		URL:              content,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
	if i.ThumbnailKey != nil {
		thumb := content + "?thumbnail=true"
		resp.ThumbnailURL = &thumb
	}
	return resp
}
