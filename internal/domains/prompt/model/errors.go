package model

import (
	"fmt"

	"shop-backend/internal/shared/apperror"
)

func ErrPromptNotFound(id int64) error {
	return apperror.NotFound("Prompt", "id", id)
}

func ErrCategoryNotFound(id int64) error {
	return apperror.NotFound("PromptCategory", "id", id)
}

func ErrCategoryNameExists(name string) error {
	return apperror.AlreadyExists("PromptCategory", "name", name)
}

func ErrSubcategoryNotFound(id int64) error {
	return apperror.NotFound("PromptSubcategory", "id", id)
}

func ErrSubcategoryMismatch(subcategoryID, categoryID int64) error {
	return apperror.FieldError("subcategoryId",
		fmt.Sprintf("subcategory %d does not belong to category %d", subcategoryID, categoryID))
}

func ErrSlotTypeNotFound(id int64) error {
	return apperror.NotFound("PromptSlotType", "id", id)
}

func ErrSlotTypeNameExists(name string) error {
	return apperror.AlreadyExists("PromptSlotType", "name", name)
}

func ErrSlotTypePositionTaken(position int) error {
	return apperror.AlreadyExists("PromptSlotType", "position", position)
}

func ErrSlotTypeInUse(id int64) error {
	return apperror.Conflict("Slot type %d still has variants", id)
}

func ErrSlotVariantNotFound(id int64) error {
	return apperror.NotFound("PromptSlotVariant", "id", id)
}

func ErrSlotVariantNameExists(name string) error {
	return apperror.AlreadyExists("PromptSlotVariant", "name", name)
}

func ErrSlotVariantInUse(id int64) error {
	return apperror.Conflict("Slot variant %d is used by prompts", id)
}
