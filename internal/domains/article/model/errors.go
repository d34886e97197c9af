package model

import (
	"fmt"

	"shop-backend/internal/shared/apperror"
)

func ErrArticleNotFound(id int64) error {
	return apperror.NotFound("Article", "id", id)
}

func ErrArticleInUse(id int64) error {
	return apperror.Conflict("Article %d is still referenced by orders", id)
}

func ErrCategoryNotFound(id int64) error {
	return apperror.NotFound("ArticleCategory", "id", id)
}

func ErrCategoryNameExists(name string) error {
	return apperror.AlreadyExists("ArticleCategory", "name", name)
}

func ErrCategoryInUse(id int64) error {
	return apperror.Conflict("Article category %d still has articles or subcategories", id)
}

func ErrSubcategoryNotFound(id int64) error {
	return apperror.NotFound("ArticleSubcategory", "id", id)
}

func ErrSubcategoryNameExists(name string) error {
	return apperror.AlreadyExists("ArticleSubcategory", "name", name)
}

func ErrSubcategoryInUse(id int64) error {
	return apperror.Conflict("Article subcategory %d is still assigned to articles", id)
}

func ErrSubcategoryMismatch(subcategoryID, categoryID int64) error {
	return apperror.FieldError("subcategoryId",
		fmt.Sprintf("subcategory %d does not belong to category %d", subcategoryID, categoryID))
}

func ErrMugVariantNotFound(id int64) error {
	return apperror.NotFound("MugVariant", "id", id)
}

func ErrNotAMug(articleID int64) error {
	return apperror.BadRequest("Article %d is not a MUG", articleID)
}

// ErrDefaultVariantRace reports a concurrent default switch on the same article.
func ErrDefaultVariantRace(articleID int64) error {
	return apperror.Conflict("Another default variant was set for article %d, retry", articleID)
}
