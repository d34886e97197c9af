package model

import "shop-backend/internal/shared/apperror"

func ErrVatNotFound(id int64) error {
	return apperror.NotFound("VAT", "id", id)
}

func ErrVatNameExists(name string) error {
	return apperror.AlreadyExists("VAT", "name", name)
}

var ErrNoDefaultVat = apperror.NotFound("VAT", "isDefault", true)

func ErrVatInUse(id int64) error {
	return apperror.Conflict("VAT %d is still referenced by articles", id)
}

var ErrDefaultVatChanged = apperror.Conflict("The default VAT rate was changed concurrently, retry the request")
