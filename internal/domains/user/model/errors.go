package model

import "shop-backend/internal/shared/apperror"

func ErrUserNotFound(id int64) error {
	return apperror.NotFound("User", "id", id)
}

func ErrUserEmailNotFound(email string) error {
	return apperror.NotFound("User", "email", email)
}

func ErrEmailExists(email string) error {
	return apperror.AlreadyExists("User", "email", email)
}

func ErrUsernameExists(username string) error {
	return apperror.AlreadyExists("User", "username", username)
}

// ErrInvalidCredentials deliberately does not say which half was wrong.
var ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")

func ErrUserInUse(id int64) error {
	return apperror.Conflict("User %d still has orders", id)
}
