package model

import "shop-backend/internal/shared/apperror"

func ErrCountryNotFound(id int64) error {
	return apperror.NotFound("Country", "id", id)
}

func ErrCountryNameExists(name string) error {
	return apperror.AlreadyExists("Country", "name", name)
}

func ErrCountryInUse(id int64) error {
	return apperror.Conflict("Country %d is still referenced by suppliers", id)
}
