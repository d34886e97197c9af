package service

import (
	"context"

	"shop-backend/internal/domains/vat/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.VatResponse, error)
	Get(ctx context.Context, id int64) (*model.VatResponse, error)
	GetDefault(ctx context.Context) (*model.VatResponse, error)
	Create(ctx context.Context, req model.CreateVatRequest) (*model.VatResponse, error)
	Update(ctx context.Context, id int64, req model.UpdateVatRequest) (*model.VatResponse, error)
	Delete(ctx context.Context, id int64) error
}
