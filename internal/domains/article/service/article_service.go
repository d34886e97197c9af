package service

import (
	"context"
	"strings"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/repository"
	supplierrepo "shop-backend/internal/domains/supplier/repository"
	vatrepo "shop-backend/internal/domains/vat/repository"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

type articleService struct {
	repo          repository.RepositoryInterface
	suppliers     supplierrepo.RepositoryInterface
	vats          vatrepo.RepositoryInterface
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
}

func NewArticleService(
	repo repository.RepositoryInterface,
	suppliers supplierrepo.RepositoryInterface,
	vats vatrepo.RepositoryInterface,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
) ServiceInterface {
	return &articleService{
		repo:          repo,
		suppliers:     suppliers,
		vats:          vats,
		categories:    categories,
		subcategories: subcategories,
	}
}

func normalizeFilter(filter model.ListFilter) model.ListFilter {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.ArticleType = model.ArticleType(strings.ToUpper(strings.TrimSpace(string(filter.ArticleType))))
	return filter
}

func (s *articleService) List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.Article], error) {
	filter = normalizeFilter(filter)
	filter.Limit = size
	filter.Offset = page * size

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return response.Page[model.Article]{}, err
	}
	return response.NewPage(articles, page, size, total), nil
}

func (s *articleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) Create(ctx context.Context, req model.CreateArticleRequest) (*model.Article, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.SupplierID, req.VatID); err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, req.CategoryID, req.SubcategoryID)
	if err != nil {
		return nil, err
	}

	active := true
	utils.Patch(&active, req.Active)

	return s.repo.Create(ctx, &model.Article{
		Name:                  req.Name,
		DescriptionShort:      req.DescriptionShort,
		DescriptionLong:       req.DescriptionLong,
		ArticleType:           req.ArticleType,
		Active:                active,
		CategoryID:            categoryID,
		SubcategoryID:         req.SubcategoryID,
		SupplierID:            req.SupplierID,
		VatID:                 req.VatID,
		PurchasePrice:         req.PurchasePrice,
		SalesPrice:            req.SalesPrice,
		SupplierArticleNumber: req.SupplierArticleNumber,
	})
}

func (s *articleService) Update(ctx context.Context, id int64, req model.UpdateArticleRequest) (*model.Article, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.SupplierID, req.VatID); err != nil {
		return nil, err
	}

	// a new category drops a subcategory that is not re-sent
	categoryID, subcategoryID := existing.CategoryID, existing.SubcategoryID
	if req.CategoryID != nil {
		if categoryID == nil || *categoryID != *req.CategoryID {
			subcategoryID = nil
		}
		categoryID = req.CategoryID
	}
	if req.SubcategoryID != nil {
		subcategoryID = req.SubcategoryID
	}
	if req.CategoryID != nil || req.SubcategoryID != nil {
		if categoryID, err = s.resolveCategory(ctx, categoryID, subcategoryID); err != nil {
			return nil, err
		}
	}
	existing.CategoryID, existing.SubcategoryID = categoryID, subcategoryID

	utils.Patch(&existing.Name, req.Name)
	utils.Patch(&existing.ArticleType, req.ArticleType)
	utils.Patch(&existing.Active, req.Active)
	utils.Patch(&existing.PurchasePrice, req.PurchasePrice)
	utils.Patch(&existing.SalesPrice, req.SalesPrice)
	utils.PatchPtr(&existing.SupplierID, req.SupplierID)
	utils.PatchPtr(&existing.VatID, req.VatID)
	if req.DescriptionShort != nil {
		existing.DescriptionShort = utils.TrimPtr(req.DescriptionShort)
	}
	if req.DescriptionLong != nil {
		existing.DescriptionLong = utils.TrimPtr(req.DescriptionLong)
	}
	if req.SupplierArticleNumber != nil {
		existing.SupplierArticleNumber = utils.TrimPtr(req.SupplierArticleNumber)
	}

	return s.repo.Update(ctx, existing)
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *articleService) ExportExcel(ctx context.Context, filter model.ListFilter) ([]byte, error) {
	filter = normalizeFilter(filter)
	filter.Limit, filter.Offset = 0, 0

	articles, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return BuildArticlesWorkbook(articles)
}

// resolveCategory checks both references and that the subcategory lies in
// the category. A subcategory without a category implies its parent.
func (s *articleService) resolveCategory(ctx context.Context, categoryID, subcategoryID *int64) (*int64, error) {
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	if subcategoryID == nil {
		return categoryID, nil
	}
	sc, err := s.subcategories.GetByID(ctx, *subcategoryID)
	if err != nil {
		return nil, err
	}
	if categoryID == nil {
		return &sc.CategoryID, nil
	}
	if sc.CategoryID != *categoryID {
		return nil, model.ErrSubcategoryMismatch(*subcategoryID, *categoryID)
	}
	return categoryID, nil
}

func (s *articleService) checkReferences(ctx context.Context, supplierID, vatID *int64) error {
	if supplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *supplierID); err != nil {
			return err
		}
	}
	if vatID != nil {
		if _, err := s.vats.GetByID(ctx, *vatID); err != nil {
			return err
		}
	}
	return nil
}
