package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Vat is a named value added tax rate in whole percent.
type Vat struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Percent     int       `json:"percent"`
	Description *string   `json:"description"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateVatRequest struct {
	Name        string  `json:"name"`
	Percent     int     `json:"percent"`
	Description *string `json:"description"`
	IsDefault   bool    `json:"isDefault"`
}

func (r CreateVatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Percent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

type UpdateVatRequest struct {
	Name        *string `json:"name"`
	Percent     *int    `json:"percent"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"isDefault"`
}

func (r UpdateVatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Percent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

func (r *CreateVatRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *UpdateVatRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

type VatResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Percent     int       `json:"percent"`
	Description *string   `json:"description,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v *Vat) ToResponse() VatResponse {
	return VatResponse{
		ID:          v.ID,
		Name:        v.Name,
		Percent:     v.Percent,
		Description: v.Description,
		IsDefault:   v.IsDefault,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
