package model

import "shop-backend/internal/shared/apperror"

func ErrPdfNotFound(id int64) error {
	return apperror.NotFound("PDF", "id", id)
}

func ErrOrderPdfNotFound(orderID int64) error {
	return apperror.NotFound("PDF", "orderId", orderID)
}

func ErrInvalidKind(kind string) error {
	return apperror.FieldError("kind", "must be ORDER or ARTICLE, got "+kind)
}

var ErrOrderPdfExists = apperror.Conflict("A PDF document already exists for this order")
