package repository

import (
	"context"

	"shop-backend/internal/domains/vat/model"
)

type RepositoryInterface interface {
	// Create and Update clear the default flag of every other row when
	// v.IsDefault is set, in the same transaction.
	Create(ctx context.Context, v *model.Vat) (*model.Vat, error)
	Update(ctx context.Context, v *model.Vat) (*model.Vat, error)
	GetByID(ctx context.Context, id int64) (*model.Vat, error)
	GetDefault(ctx context.Context) (*model.Vat, error)
	List(ctx context.Context) ([]model.Vat, error)
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
