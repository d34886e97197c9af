package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/shared/utils"
)

const defaultColorCode = "#ffffff"

var colorCodePattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var colorCode = validation.Match(colorCodePattern).Error("must be a hex color like #1a2b3c")

// MugVariant is one sellable color combination of a MUG article. At most
// one variant per article is the default.
type MugVariant struct {
	ID                   int64     `json:"id"`
	ArticleID            int64     `json:"articleId"`
	InsideColorCode      string    `json:"insideColorCode"`
	OutsideColorCode     string    `json:"outsideColorCode"`
	Name                 string    `json:"name"`
	ArticleVariantNumber *string   `json:"articleVariantNumber"`
	IsDefault            bool      `json:"isDefault"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CreateMugVariantRequest struct {
	InsideColorCode      string  `json:"insideColorCode"`
	OutsideColorCode     string  `json:"outsideColorCode"`
	Name                 string  `json:"name"`
	ArticleVariantNumber *string `json:"articleVariantNumber"`
	IsDefault            bool    `json:"isDefault"`
	Active               *bool   `json:"active"`
}

func (r CreateMugVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.InsideColorCode, colorCode),
		validation.Field(&r.OutsideColorCode, colorCode),
		validation.Field(&r.ArticleVariantNumber, validation.Length(0, 100)),
	)
}

func (r *CreateMugVariantRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.InsideColorCode = normalizeColor(r.InsideColorCode)
	r.OutsideColorCode = normalizeColor(r.OutsideColorCode)
	r.ArticleVariantNumber = utils.TrimPtr(r.ArticleVariantNumber)
}

// UpdateMugVariantRequest: nil fields are left unchanged.
type UpdateMugVariantRequest struct {
	InsideColorCode      *string `json:"insideColorCode"`
	OutsideColorCode     *string `json:"outsideColorCode"`
	Name                 *string `json:"name"`
	ArticleVariantNumber *string `json:"articleVariantNumber"`
	IsDefault            *bool   `json:"isDefault"`
	Active               *bool   `json:"active"`
}

func (r UpdateMugVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.InsideColorCode, colorCode),
		validation.Field(&r.OutsideColorCode, colorCode),
		validation.Field(&r.ArticleVariantNumber, validation.Length(0, 100)),
	)
}

func (r *UpdateMugVariantRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.InsideColorCode != nil {
		c := normalizeColor(*r.InsideColorCode)
		r.InsideColorCode = &c
	}
	if r.OutsideColorCode != nil {
		c := normalizeColor(*r.OutsideColorCode)
		r.OutsideColorCode = &c
	}
}

// normalizeColor lower-cases a color code; blank means white.
func normalizeColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return defaultColorCode
	}
	return c
}
