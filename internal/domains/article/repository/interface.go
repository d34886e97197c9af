package repository

import (
	"context"

	"shop-backend/internal/domains/article/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Article) (*model.Article, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Article, int64, error)
	Update(ctx context.Context, a *model.Article) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error)
	GetByID(ctx context.Context, id int64) (*model.ArticleCategory, error)
	List(ctx context.Context) ([]model.ArticleCategory, error)
	Update(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error)
	// Delete fails with a conflict while articles or subcategories reference the category.
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type SubcategoryRepository interface {
	Create(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error)
	GetByID(ctx context.Context, id int64) (*model.ArticleSubcategory, error)
	// List returns every subcategory, or those of categoryID when set.
	List(ctx context.Context, categoryID *int64) ([]model.ArticleSubcategory, error)
	Update(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error)
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, categoryID int64, name string) (bool, error)
}

type VariantRepository interface {
	// Create and Update clear the previous default of the article when
	// the variant is marked default.
	Create(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error)
	GetByID(ctx context.Context, id int64) (*model.MugVariant, error)
	ListByArticle(ctx context.Context, articleID int64, activeOnly bool) ([]model.MugVariant, error)
	Update(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error)
	Delete(ctx context.Context, id int64) error
}
