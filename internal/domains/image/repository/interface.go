package repository

import (
	"context"

	"shop-backend/internal/domains/image/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	GetByID(ctx context.Context, id int64) (*model.Image, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Image, int64, error)
	Update(ctx context.Context, img *model.Image) (*model.Image, error)
	SetThumbnail(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
	// EnsureExists returns a not-found error when id is unknown.
	EnsureExists(ctx context.Context, id int64) error
}
