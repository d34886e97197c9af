package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/shared/utils"
)

type PromptSubcategory struct {
	ID               int64     `json:"id"`
	PromptCategoryID int64     `json:"promptCategoryId"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	PromptsCount     int       `json:"promptsCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateSubcategoryRequest struct {
	PromptCategoryID int64   `json:"promptCategoryId"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
}

func (r CreateSubcategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PromptCategoryID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r *CreateSubcategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = utils.TrimPtr(r.Description)
}

type UpdateSubcategoryRequest struct {
	PromptCategoryID *int64  `json:"promptCategoryId"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
}

func (r UpdateSubcategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PromptCategoryID, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

func (r *UpdateSubcategoryRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}
