package repository

import (
	"context"

	"shop-backend/internal/domains/supplier/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	GetByID(ctx context.Context, id int64) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	Delete(ctx context.Context, id int64) error
	// ExistsByName and ExistsByEmail ignore the row with excludeID (0 for none).
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}
