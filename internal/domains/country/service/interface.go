package service

import (
	"context"

	"shop-backend/internal/domains/country/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.CountryResponse, error)
	Get(ctx context.Context, id int64) (*model.CountryResponse, error)
	Create(ctx context.Context, req model.CreateCountryRequest) (*model.CountryResponse, error)
	Update(ctx context.Context, id int64, req model.UpdateCountryRequest) (*model.CountryResponse, error)
	Delete(ctx context.Context, id int64) error
}
