package service

import (
	"context"

	"github.com/rs/zerolog/log"

	countrymodel "shop-backend/internal/domains/country/model"
	countryrepo "shop-backend/internal/domains/country/repository"
	"shop-backend/internal/domains/supplier/model"
	"shop-backend/internal/domains/supplier/repository"
	"shop-backend/internal/shared/apperror"
)

type supplierService struct {
	repo      repository.RepositoryInterface
	countries countryrepo.RepositoryInterface
}

func NewSupplierService(repo repository.RepositoryInterface, countries countryrepo.RepositoryInterface) ServiceInterface {
	return &supplierService{repo: repo, countries: countries}
}

func (s *supplierService) List(ctx context.Context) ([]model.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]countrymodel.CountryResponse, len(countries))
	for i := range countries {
		byID[countries[i].ID] = countries[i].ToResponse()
	}

	out := make([]model.SupplierResponse, len(suppliers))
	for i := range suppliers {
		var country *countrymodel.CountryResponse
		if id := suppliers[i].CountryID; id != nil {
			if c, ok := byID[*id]; ok {
				country = &c
			}
		}
		out[i] = suppliers[i].ToResponse(country)
	}
	return out, nil
}

func (s *supplierService) Get(ctx context.Context, id int64) (*model.SupplierResponse, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, supplier), nil
}

func (s *supplierService) Create(ctx context.Context, req model.SupplierRequest) (*model.SupplierResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{}
	req.ApplyTo(supplier)

	if err := s.checkUnique(ctx, supplier, 0); err != nil {
		return nil, err
	}
	if err := s.ensureCountry(ctx, supplier.CountryID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, created), nil
}

func (s *supplierService) Update(ctx context.Context, id int64, req model.SupplierRequest) (*model.SupplierResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(existing)

	if err := s.checkUnique(ctx, existing, id); err != nil {
		return nil, err
	}
	if err := s.ensureCountry(ctx, req.CountryID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated), nil
}

func (s *supplierService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *supplierService) checkUnique(ctx context.Context, supplier *model.Supplier, excludeID int64) error {
	if supplier.Name != nil {
		exists, err := s.repo.ExistsByName(ctx, *supplier.Name, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrSupplierNameExists(*supplier.Name)
		}
	}
	if supplier.Email != nil {
		exists, err := s.repo.ExistsByEmail(ctx, *supplier.Email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrSupplierEmailExists(*supplier.Email)
		}
	}
	return nil
}

func (s *supplierService) ensureCountry(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.countries.GetByID(ctx, *id)
	return err
}

func (s *supplierService) toResponse(ctx context.Context, supplier *model.Supplier) *model.SupplierResponse {
	var country *countrymodel.CountryResponse
	if supplier.CountryID != nil {
		c, err := s.countries.GetByID(ctx, *supplier.CountryID)
		if err != nil {
			log.Warn().Err(err).Int64("supplier_id", supplier.ID).Msg("failed to load supplier country")
		} else {
			resp := c.ToResponse()
			country = &resp
		}
	}
	resp := supplier.ToResponse(country)
	return &resp
}
