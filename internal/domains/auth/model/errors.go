package model

import "shop-backend/internal/shared/apperror"

// ErrInvalidCredentials does not reveal whether the email exists.
func ErrInvalidCredentials() error {
	return apperror.Unauthorized("Invalid email or password")
}
