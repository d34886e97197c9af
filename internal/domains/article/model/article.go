package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"shop-backend/internal/shared/utils"
)

type ArticleType string

const (
	ArticleTypeMug    ArticleType = "MUG"
	ArticleTypeShirt  ArticleType = "SHIRT"
	ArticleTypePillow ArticleType = "PILLOW"
)

var articleTypes = []interface{}{ArticleTypeMug, ArticleTypeShirt, ArticleTypePillow}

type Article struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	DescriptionShort      *string         `json:"descriptionShort"`
	DescriptionLong       *string         `json:"descriptionLong"`
	ArticleType           ArticleType     `json:"articleType"`
	Active                bool            `json:"active"`
	CategoryID            *int64          `json:"categoryId"`
	CategoryName          *string         `json:"categoryName"`
	SubcategoryID         *int64          `json:"subcategoryId"`
	SubcategoryName       *string         `json:"subcategoryName"`
	SupplierID            *int64          `json:"supplierId"`
	SupplierName          *string         `json:"supplierName"`
	VatID                 *int64          `json:"vatId"`
	VatPercent            *int            `json:"vatPercent"`
	PurchasePrice         decimal.Decimal `json:"purchasePrice"`
	SalesPrice            decimal.Decimal `json:"salesPrice"`
	SupplierArticleNumber *string         `json:"supplierArticleNumber"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// nonNegative validates decimal.Decimal and *decimal.Decimal values.
var nonNegative = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
})

type CreateArticleRequest struct {
	Name                  string          `json:"name"`
	DescriptionShort      *string         `json:"descriptionShort"`
	DescriptionLong       *string         `json:"descriptionLong"`
	ArticleType           ArticleType     `json:"articleType"`
	Active                *bool           `json:"active"`
	CategoryID            *int64          `json:"categoryId"`
	SubcategoryID         *int64          `json:"subcategoryId"`
	SupplierID            *int64          `json:"supplierId"`
	VatID                 *int64          `json:"vatId"`
	PurchasePrice         decimal.Decimal `json:"purchasePrice"`
	SalesPrice            decimal.Decimal `json:"salesPrice"`
	SupplierArticleNumber *string         `json:"supplierArticleNumber"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.DescriptionShort, validation.Length(0, 500)),
		validation.Field(&r.ArticleType, validation.Required, validation.In(articleTypes...).Error("must be MUG, SHIRT or PILLOW")),
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.SubcategoryID, validation.Min(int64(1))),
		validation.Field(&r.SupplierID, validation.Min(int64(1))),
		validation.Field(&r.VatID, validation.Min(int64(1))),
		validation.Field(&r.PurchasePrice, nonNegative),
		validation.Field(&r.SalesPrice, nonNegative),
		validation.Field(&r.SupplierArticleNumber, validation.Length(0, 100)),
	)
}

func (r *CreateArticleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ArticleType = ArticleType(strings.ToUpper(strings.TrimSpace(string(r.ArticleType))))
	r.DescriptionShort = utils.TrimPtr(r.DescriptionShort)
	r.DescriptionLong = utils.TrimPtr(r.DescriptionLong)
	r.SupplierArticleNumber = utils.TrimPtr(r.SupplierArticleNumber)
}

// UpdateArticleRequest: nil fields are left unchanged.
type UpdateArticleRequest struct {
	Name                  *string          `json:"name"`
	DescriptionShort      *string          `json:"descriptionShort"`
	DescriptionLong       *string          `json:"descriptionLong"`
	ArticleType           *ArticleType     `json:"articleType"`
	Active                *bool            `json:"active"`
	CategoryID            *int64           `json:"categoryId"`
	SubcategoryID         *int64           `json:"subcategoryId"`
	SupplierID            *int64           `json:"supplierId"`
	VatID                 *int64           `json:"vatId"`
	PurchasePrice         *decimal.Decimal `json:"purchasePrice"`
	SalesPrice            *decimal.Decimal `json:"salesPrice"`
	SupplierArticleNumber *string          `json:"supplierArticleNumber"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.DescriptionShort, validation.Length(0, 500)),
		validation.Field(&r.ArticleType, validation.NilOrNotEmpty, validation.In(articleTypes...).Error("must be MUG, SHIRT or PILLOW")),
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.SubcategoryID, validation.Min(int64(1))),
		validation.Field(&r.SupplierID, validation.Min(int64(1))),
		validation.Field(&r.VatID, validation.Min(int64(1))),
		validation.Field(&r.PurchasePrice, nonNegative),
		validation.Field(&r.SalesPrice, nonNegative),
		validation.Field(&r.SupplierArticleNumber, validation.Length(0, 100)),
	)
}

func (r *UpdateArticleRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.ArticleType != nil {
		v := ArticleType(strings.ToUpper(strings.TrimSpace(string(*r.ArticleType))))
		r.ArticleType = &v
	}
}

type ListFilter struct {
	ArticleType   ArticleType
	Active        *bool
	CategoryID    *int64
	SubcategoryID *int64
	Search      string
	Limit       int
	Offset      int
}
