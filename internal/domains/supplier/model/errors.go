package model

import "shop-backend/internal/shared/apperror"

func ErrSupplierNotFound(id int64) error {
	return apperror.NotFound("Supplier", "id", id)
}

func ErrSupplierNameExists(name string) error {
	return apperror.AlreadyExists("Supplier", "name", name)
}

func ErrSupplierEmailExists(email string) error {
	return apperror.AlreadyExists("Supplier", "email", email)
}

func ErrSupplierInUse(id int64) error {
	return apperror.Conflict("Supplier %d is still referenced by articles", id)
}
