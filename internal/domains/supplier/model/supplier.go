package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	countrymodel "shop-backend/internal/domains/country/model"
	"shop-backend/internal/shared/utils"
)

type Supplier struct {
	ID           int64     `json:"id"`
	Name         *string   `json:"name"`
	Title        *string   `json:"title"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Street       *string   `json:"street"`
	HouseNumber  *string   `json:"houseNumber"`
	City         *string   `json:"city"`
	PostalCode   *string   `json:"postalCode"`
	CountryID    *int64    `json:"countryId"`
	PhoneNumber1 *string   `json:"phoneNumber1"`
	PhoneNumber2 *string   `json:"phoneNumber2"`
	PhoneNumber3 *string   `json:"phoneNumber3"`
	Email        *string   `json:"email"`
	Website      *string   `json:"website"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SupplierRequest is used for both create and update. On update nil fields
// are left unchanged and an empty string clears a field.
type SupplierRequest struct {
	Name         *string `json:"name"`
	Title        *string `json:"title"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Street       *string `json:"street"`
	HouseNumber  *string `json:"houseNumber"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postalCode"`
	CountryID    *int64  `json:"countryId"`
	PhoneNumber1 *string `json:"phoneNumber1"`
	PhoneNumber2 *string `json:"phoneNumber2"`
	PhoneNumber3 *string `json:"phoneNumber3"`
	Email        *string `json:"email"`
	Website      *string `json:"website"`
}

func (r SupplierRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Title, validation.Length(0, 100)),
		validation.Field(&r.FirstName, validation.Length(0, 255)),
		validation.Field(&r.LastName, validation.Length(0, 255)),
		validation.Field(&r.Street, validation.Length(0, 255)),
		validation.Field(&r.HouseNumber, validation.Length(0, 50)),
		validation.Field(&r.City, validation.Length(0, 255)),
		validation.Field(&r.PostalCode, validation.Length(0, 20)),
		validation.Field(&r.CountryID, validation.Min(int64(1))),
		validation.Field(&r.PhoneNumber1, validation.Length(0, 50)),
		validation.Field(&r.PhoneNumber2, validation.Length(0, 50)),
		validation.Field(&r.PhoneNumber3, validation.Length(0, 50)),
		validation.Field(&r.Email, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&r.Website, is.URL, validation.Length(0, 500)),
	)
}

// Normalize trims every text field. Blank values become "" rather than nil
// so that an update can tell "clear" from "omitted".
func (r *SupplierRequest) Normalize() {
	for _, f := range r.textFields() {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
}

func (r *SupplierRequest) textFields() []**string {
	return []**string{
		&r.Name, &r.Title, &r.FirstName, &r.LastName, &r.Street, &r.HouseNumber,
		&r.City, &r.PostalCode, &r.PhoneNumber1, &r.PhoneNumber2, &r.PhoneNumber3,
		&r.Email, &r.Website,
	}
}

// ApplyTo copies the request onto s following the update rules.
func (r *SupplierRequest) ApplyTo(s *Supplier) {
	dst := []**string{
		&s.Name, &s.Title, &s.FirstName, &s.LastName, &s.Street, &s.HouseNumber,
		&s.City, &s.PostalCode, &s.PhoneNumber1, &s.PhoneNumber2, &s.PhoneNumber3,
		&s.Email, &s.Website,
	}
	for i, src := range r.textFields() {
		if *src != nil {
			*dst[i] = utils.TrimPtr(*src)
		}
	}
	utils.PatchPtr(&s.CountryID, r.CountryID)
}

type SupplierResponse struct {
	ID           int64                         `json:"id"`
	Name         *string                       `json:"name"`
	Title        *string                       `json:"title"`
	FirstName    *string                       `json:"firstName"`
	LastName     *string                       `json:"lastName"`
	Street       *string                       `json:"street"`
	HouseNumber  *string                       `json:"houseNumber"`
	City         *string                       `json:"city"`
	PostalCode   *string                       `json:"postalCode"`
	Country      *countrymodel.CountryResponse `json:"country"`
	PhoneNumber1 *string                       `json:"phoneNumber1"`
	PhoneNumber2 *string                       `json:"phoneNumber2"`
	PhoneNumber3 *string                       `json:"phoneNumber3"`
	Email        *string                       `json:"email"`
	Website      *string                       `json:"website"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
}

func (s *Supplier) ToResponse(country *countrymodel.CountryResponse) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Title:        s.Title,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Street:       s.Street,
		HouseNumber:  s.HouseNumber,
		City:         s.City,
		PostalCode:   s.PostalCode,
		Country:      country,
		PhoneNumber1: s.PhoneNumber1,
		PhoneNumber2: s.PhoneNumber2,
		PhoneNumber3: s.PhoneNumber3,
		Email:        s.Email,
		Website:      s.Website,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
