package service

import (
	"context"
	"strings"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/domains/vat/repository"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/utils"
)

type vatService struct {
	repo repository.RepositoryInterface
}

func NewVatService(repo repository.RepositoryInterface) ServiceInterface {
	return &vatService{repo: repo}
}

func (s *vatService) List(ctx context.Context) ([]model.VatResponse, error) {
	vats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.VatResponse, len(vats))
	for i := range vats {
		out[i] = vats[i].ToResponse()
	}
	return out, nil
}

func (s *vatService) Get(ctx context.Context, id int64) (*model.VatResponse, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := v.ToResponse()
	return &resp, nil
}

func (s *vatService) GetDefault(ctx context.Context) (*model.VatResponse, error) {
	v, err := s.repo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	resp := v.ToResponse()
	return &resp, nil
}

func (s *vatService) Create(ctx context.Context, req model.CreateVatRequest) (*model.VatResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrVatNameExists(req.Name)
	}

	created, err := s.repo.Create(ctx, &model.Vat{
		Name:        req.Name,
		Percent:     req.Percent,
		Description: utils.TrimPtr(req.Description),
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse()
	return &resp, nil
}

func (s *vatService) Update(ctx context.Context, id int64, req model.UpdateVatRequest) (*model.VatResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, existing.Name) {
		exists, err := s.repo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrVatNameExists(*req.Name)
		}
	}

	utils.Patch(&existing.Name, req.Name)
	utils.Patch(&existing.Percent, req.Percent)
	utils.PatchPtr(&existing.Description, req.Description)
	utils.Patch(&existing.IsDefault, req.IsDefault)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *vatService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
