package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/shared/utils"
)

type ArticleCategory struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description"`
	SubcategoriesCount int       `json:"subcategoriesCount"`
	ArticlesCount      int       `json:"articlesCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ArticleSubcategory struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"articleCategoryId"`
	CategoryName  string    `json:"articleCategoryName"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ArticlesCount int       `json:"articlesCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = utils.TrimPtr(r.Description)
}

// UpdateCategoryRequest: nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (r *UpdateCategoryRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

type CreateSubcategoryRequest struct {
	CategoryID  int64   `json:"articleCategoryId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateSubcategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (r *CreateSubcategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = utils.TrimPtr(r.Description)
}

// UpdateSubcategoryRequest: nil fields are left unchanged. Moving a
// subcategory to another category is allowed while no article uses it.
type UpdateSubcategoryRequest struct {
	CategoryID  *int64  `json:"articleCategoryId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateSubcategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (r *UpdateSubcategoryRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}
