package service

import (
	"context"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/shared/response"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.Article], error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, req model.CreateArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id int64, req model.UpdateArticleRequest) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
	// ExportExcel renders every article matching filter as an .xlsx workbook.
	ExportExcel(ctx context.Context, filter model.ListFilter) ([]byte, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]model.ArticleCategory, error)
	Get(ctx context.Context, id int64) (*model.ArticleCategory, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.ArticleCategory, error)
	Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.ArticleCategory, error)
	Delete(ctx context.Context, id int64) error

	ListSubcategories(ctx context.Context, categoryID *int64) ([]model.ArticleSubcategory, error)
	GetSubcategory(ctx context.Context, id int64) (*model.ArticleSubcategory, error)
	CreateSubcategory(ctx context.Context, req model.CreateSubcategoryRequest) (*model.ArticleSubcategory, error)
	UpdateSubcategory(ctx context.Context, id int64, req model.UpdateSubcategoryRequest) (*model.ArticleSubcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

// VariantService manages the mug variants of one article. Variant ids
// that belong to another article are reported as not found.
type VariantService interface {
	List(ctx context.Context, articleID int64, activeOnly bool) ([]model.MugVariant, error)
	Create(ctx context.Context, articleID int64, req model.CreateMugVariantRequest) (*model.MugVariant, error)
	Update(ctx context.Context, articleID, variantID int64, req model.UpdateMugVariantRequest) (*model.MugVariant, error)
	Delete(ctx context.Context, articleID, variantID int64) error
}
