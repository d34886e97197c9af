package model

import "shop-backend/internal/shared/apperror"

func ErrCartItemNotFound(id int64) error {
	return apperror.NotFound("CartItem", "id", id)
}

func ErrArticleInactive(id int64) error {
	return apperror.BadRequest("Article %d is not available", id)
}

func ErrCartNotActive(id int64) error {
	return apperror.Conflict("Cart %d is no longer active", id)
}

func ErrVariantMismatch(variantID, articleID int64) error {
	return apperror.BadRequest("Variant %d is not an active variant of article %d", variantID, articleID)
}
