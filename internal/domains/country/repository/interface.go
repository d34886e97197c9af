package repository

import (
	"context"

	"shop-backend/internal/domains/country/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, c *model.Country) (*model.Country, error)
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
	Update(ctx context.Context, c *model.Country) (*model.Country, error)
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
