package service

import (
	"context"
	"strings"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/domains/prompt/repository"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/utils"
)

type categoryService struct {
	repo          repository.CategoryRepository
	subcategories repository.SubcategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository, subcategories repository.SubcategoryRepository) CategoryService {
	return &categoryService{repo: repo, subcategories: subcategories}
}

func (s *categoryService) List(ctx context.Context) ([]model.PromptCategory, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id int64) (*model.PromptCategory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.PromptCategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrCategoryNameExists(req.Name)
	}
	return s.repo.Create(ctx, &model.PromptCategory{Name: req.Name})
}

func (s *categoryService) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.PromptCategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return existing, nil
	}

	if !strings.EqualFold(*req.Name, existing.Name) {
		exists, err := s.repo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrCategoryNameExists(*req.Name)
		}
	}
	existing.Name = *req.Name
	return s.repo.Update(ctx, existing)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) ListSubcategories(ctx context.Context, categoryID *int64) ([]model.PromptSubcategory, error) {
	if categoryID != nil {
		if _, err := s.repo.GetByID(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	return s.subcategories.List(ctx, categoryID)
}

func (s *categoryService) GetSubcategory(ctx context.Context, id int64) (*model.PromptSubcategory, error) {
	return s.subcategories.GetByID(ctx, id)
}

func (s *categoryService) CreateSubcategory(ctx context.Context, req model.CreateSubcategoryRequest) (*model.PromptSubcategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, req.PromptCategoryID); err != nil {
		return nil, err
	}
	return s.subcategories.Create(ctx, &model.PromptSubcategory{
		PromptCategoryID: req.PromptCategoryID,
		Name:             req.Name,
		Description:      req.Description,
	})
}

func (s *categoryService) UpdateSubcategory(ctx context.Context, id int64, req model.UpdateSubcategoryRequest) (*model.PromptSubcategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	existing, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.PromptCategoryID != nil && *req.PromptCategoryID != existing.PromptCategoryID {
		if _, err := s.repo.GetByID(ctx, *req.PromptCategoryID); err != nil {
			return nil, err
		}
		existing.PromptCategoryID = *req.PromptCategoryID
	}
	utils.Patch(&existing.Name, req.Name)
	if req.Description != nil {
		existing.Description = utils.TrimPtr(req.Description)
	}
	return s.subcategories.Update(ctx, existing)
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, id int64) error {
	return s.subcategories.Delete(ctx, id)
}
