package model

import "shop-backend/internal/shared/apperror"

func ErrOrderNotFound(id int64) error {
	return apperror.NotFound("Order", "id", id)
}

func ErrEmptyCart() error {
	return apperror.BadRequest("Cannot create order from empty cart")
}

func ErrCartAlreadyOrdered(cartID int64) error {
	return apperror.BadRequest("Order already exists for cart: %d", cartID)
}

func ErrStatusFinal(status OrderStatus) error {
	return apperror.BadRequest("Order is %s and can no longer change status", status)
}

func ErrInvalidStatus(status string) error {
	return apperror.FieldError("status", "unknown order status "+status)
}
