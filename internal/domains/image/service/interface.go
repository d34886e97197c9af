package service

import (
	"context"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/shared/response"
)

type ServiceInterface interface {
	// Upload validates, optionally crops and stores data as PNG.
	Upload(ctx context.Context, userID *int64, originalFilename string, data []byte, req model.UploadRequest) (*model.ImageResponse, error)
	List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.ImageResponse], error)
	Get(ctx context.Context, id int64) (*model.ImageResponse, error)
	// Content returns the stored bytes and their content type.
	Content(ctx context.Context, id int64, thumbnail bool) ([]byte, string, error)
	Update(ctx context.Context, id int64, req model.UpdateImageRequest) (*model.ImageResponse, error)
	Delete(ctx context.Context, id int64) error

	// GenerateThumbnail is run by the worker after an upload.
	GenerateThumbnail(ctx context.Context, id int64) error
}
