package model

import "shop-backend/internal/shared/apperror"

func ErrImageNotFound(id int64) error {
	return apperror.NotFound("Image", "id", id)
}

func ErrInvalidImage(err error) error {
	return apperror.BadRequest("Invalid image: %v", err)
}

func ErrThumbnailMissing(id int64) error {
	return apperror.NotFound("Thumbnail", "imageId", id)
}
