package service

import (
	"context"
	"strings"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/repository"
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

func (s *categoryService) List(ctx context.Context) ([]model.ArticleCategory, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id int64) (*model.ArticleCategory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.ArticleCategory, error) {
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
	return s.repo.Create(ctx, &model.ArticleCategory{Name: req.Name, Description: req.Description})
}

func (s *categoryService) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.ArticleCategory, error) {
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
			return nil, model.ErrCategoryNameExists(*req.Name)
		}
	}
	utils.Patch(&existing.Name, req.Name)
	if req.Description != nil {
		existing.Description = utils.TrimPtr(req.Description)
	}
	return s.repo.Update(ctx, existing)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ArticlesCount > 0 || existing.SubcategoriesCount > 0 {
		return model.ErrCategoryInUse(id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) ListSubcategories(ctx context.Context, categoryID *int64) ([]model.ArticleSubcategory, error) {
	if categoryID != nil {
		if _, err := s.repo.GetByID(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	return s.subcategories.List(ctx, categoryID)
}

func (s *categoryService) GetSubcategory(ctx context.Context, id int64) (*model.ArticleSubcategory, error) {
	return s.subcategories.GetByID(ctx, id)
}

func (s *categoryService) CreateSubcategory(ctx context.Context, req model.CreateSubcategoryRequest) (*model.ArticleSubcategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureSubcategoryName(ctx, req.CategoryID, req.Name); err != nil {
		return nil, err
	}
	return s.subcategories.Create(ctx, &model.ArticleSubcategory{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *categoryService) UpdateSubcategory(ctx context.Context, id int64, req model.UpdateSubcategoryRequest) (*model.ArticleSubcategory, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	existing, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := req.CategoryID != nil && *req.CategoryID != existing.CategoryID
	if moved {
		// articles carry both ids and would point at a foreign pair
		if existing.ArticlesCount > 0 {
			return nil, model.ErrSubcategoryInUse(id)
		}
		if _, err := s.repo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	renamed := req.Name != nil && !strings.EqualFold(*req.Name, existing.Name)
	utils.Patch(&existing.CategoryID, req.CategoryID)
	utils.Patch(&existing.Name, req.Name)
	if moved || renamed {
		if err := s.ensureSubcategoryName(ctx, existing.CategoryID, existing.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		existing.Description = utils.TrimPtr(req.Description)
	}
	return s.subcategories.Update(ctx, existing)
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, id int64) error {
	existing, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ArticlesCount > 0 {
		return model.ErrSubcategoryInUse(id)
	}
	return s.subcategories.Delete(ctx, id)
}

func (s *categoryService) ensureSubcategoryName(ctx context.Context, categoryID int64, name string) error {
	exists, err := s.subcategories.ExistsByName(ctx, categoryID, name)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrSubcategoryNameExists(name)
	}
	return nil
}
