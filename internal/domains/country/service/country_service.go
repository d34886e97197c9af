package service

import (
	"context"
	"strings"

	"shop-backend/internal/domains/country/model"
	"shop-backend/internal/domains/country/repository"
	"shop-backend/internal/shared/apperror"
)

type countryService struct {
	repo repository.RepositoryInterface
}

func NewCountryService(repo repository.RepositoryInterface) ServiceInterface {
	return &countryService{repo: repo}
}

func (s *countryService) List(ctx context.Context) ([]model.CountryResponse, error) {
	countries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CountryResponse, len(countries))
	for i := range countries {
		out[i] = countries[i].ToResponse()
	}
	return out, nil
}

func (s *countryService) Get(ctx context.Context, id int64) (*model.CountryResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := c.ToResponse()
	return &resp, nil
}

func (s *countryService) Create(ctx context.Context, req model.CreateCountryRequest) (*model.CountryResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrCountryNameExists(req.Name)
	}

	created, err := s.repo.Create(ctx, &model.Country{Name: req.Name})
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse()
	return &resp, nil
}

func (s *countryService) Update(ctx context.Context, id int64, req model.UpdateCountryRequest) (*model.CountryResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if !strings.EqualFold(*req.Name, existing.Name) {
			exists, err := s.repo.ExistsByName(ctx, *req.Name)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, model.ErrCountryNameExists(*req.Name)
			}
		}
		existing.Name = *req.Name
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *countryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
