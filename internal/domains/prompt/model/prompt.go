package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/shared/utils"
)

type Prompt struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	PromptText           *string   `json:"promptText"`
	CategoryID           *int64    `json:"categoryId"`
	CategoryName         *string   `json:"categoryName"`
	SubcategoryID        *int64    `json:"subcategoryId"`
	SubcategoryName      *string   `json:"subcategoryName"`
	Active               bool      `json:"active"`
	ExampleImageFilename *string   `json:"exampleImageFilename"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	// Slots are ordered by slot type position. Writes replace the mappings.
	Slots []PromptSlotVariant `json:"slots"`
}

type CreatePromptRequest struct {
	Title                string  `json:"title"`
	PromptText           *string `json:"promptText"`
	CategoryID           *int64  `json:"categoryId"`
	SubcategoryID        *int64  `json:"subcategoryId"`
	Active               *bool   `json:"active"`
	ExampleImageFilename *string `json:"exampleImageFilename"`
	SlotIDs              []int64 `json:"slotIds"`
}

func (r CreatePromptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.SubcategoryID, validation.Min(int64(1))),
		validation.Field(&r.SlotIDs, validation.Each(validation.Min(int64(1)))),
		validation.Field(&r.ExampleImageFilename, validation.Length(0, 500)),
	)
}

func (r *CreatePromptRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.PromptText = utils.TrimPtr(r.PromptText)
	r.ExampleImageFilename = utils.TrimPtr(r.ExampleImageFilename)
}

// UpdatePromptRequest: nil fields are left unchanged. An empty slotIds
// array clears the slots.
type UpdatePromptRequest struct {
	Title                *string  `json:"title"`
	PromptText           *string  `json:"promptText"`
	CategoryID           *int64   `json:"categoryId"`
	SubcategoryID        *int64   `json:"subcategoryId"`
	Active               *bool    `json:"active"`
	ExampleImageFilename *string  `json:"exampleImageFilename"`
	SlotIDs              *[]int64 `json:"slotIds"`
}

func (r UpdatePromptRequest) Validate() error {
	var slotIDs []int64
	if r.SlotIDs != nil {
		slotIDs = *r.SlotIDs
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.SubcategoryID, validation.Min(int64(1))),
		validation.Field(&r.SlotIDs, validation.By(func(interface{}) error {
			return validation.Validate(slotIDs, validation.Each(validation.Min(int64(1))))
		})),
		validation.Field(&r.ExampleImageFilename, validation.Length(0, 500)),
	)
}

func (r *UpdatePromptRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
}

type PromptResponse struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	PromptText           *string   `json:"promptText"`
	CategoryID           *int64    `json:"categoryId"`
	CategoryName         *string   `json:"categoryName"`
	SubcategoryID        *int64    `json:"subcategoryId"`
	SubcategoryName      *string   `json:"subcategoryName"`
	Active               bool      `json:"active"`
	ExampleImageFilename *string   `json:"exampleImageFilename"`
	ExampleImageURL      *string   `json:"exampleImageUrl"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	Slots []SlotVariantResponse `json:"slots"`
}

// ToResponse maps the entity; imageURL turns a stored filename into a URL.
func (p *Prompt) ToResponse(imageURL func(string) string) PromptResponse {
	resp := PromptResponse{
		ID:                   p.ID,
		Title:                p.Title,
		PromptText:           p.PromptText,
		CategoryID:           p.CategoryID,
		CategoryName:         p.CategoryName,
		SubcategoryID:        p.SubcategoryID,
		SubcategoryName:      p.SubcategoryName,
		Active:               p.Active,
		ExampleImageFilename: p.ExampleImageFilename,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Slots:                make([]SlotVariantResponse, len(p.Slots)),
	}
	for i := range p.Slots {
		resp.Slots[i] = p.Slots[i].ToResponse(imageURL)
	}
	if p.ExampleImageFilename != nil && imageURL != nil {
		u := imageURL(*p.ExampleImageFilename)
		resp.ExampleImageURL = &u
	}
	return resp
}
