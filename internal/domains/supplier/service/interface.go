package service

import (
	"context"

	"shop-backend/internal/domains/supplier/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.SupplierResponse, error)
	Get(ctx context.Context, id int64) (*model.SupplierResponse, error)
	Create(ctx context.Context, req model.SupplierRequest) (*model.SupplierResponse, error)
	Update(ctx context.Context, id int64, req model.SupplierRequest) (*model.SupplierResponse, error)
	Delete(ctx context.Context, id int64) error
}
