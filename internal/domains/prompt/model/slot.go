package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/shared/utils"
)

// PromptSlotType groups interchangeable prompt fragments. Position orders
// the groups when a prompt's slots are listed.
type PromptSlotType struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Position      int       `json:"position"`
	VariantsCount int       `json:"variantsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateSlotTypeRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func (r CreateSlotTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

func (r *CreateSlotTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateSlotTypeRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

func (r UpdateSlotTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

func (r *UpdateSlotTypeRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

type PromptSlotVariant struct {
	ID                   int64     `json:"id"`
	SlotTypeID           int64     `json:"promptSlotTypeId"`
	SlotTypeName         string    `json:"promptSlotTypeName"`
	SlotTypePosition     int       `json:"-"`
	Name                 string    `json:"name"`
	Prompt               *string   `json:"prompt"`
	Description          *string   `json:"description"`
	ExampleImageFilename *string   `json:"exampleImageFilename"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CreateSlotVariantRequest struct {
	SlotTypeID           int64   `json:"promptSlotTypeId"`
	Name                 string  `json:"name"`
	Prompt               *string `json:"prompt"`
	Description          *string `json:"description"`
	ExampleImageFilename *string `json:"exampleImageFilename"`
}

func (r CreateSlotVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SlotTypeID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ExampleImageFilename, validation.Length(0, 500)),
	)
}

func (r *CreateSlotVariantRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Prompt = utils.TrimPtr(r.Prompt)
	r.Description = utils.TrimPtr(r.Description)
	r.ExampleImageFilename = utils.TrimPtr(r.ExampleImageFilename)
}

type UpdateSlotVariantRequest struct {
	SlotTypeID           *int64  `json:"promptSlotTypeId"`
	Name                 *string `json:"name"`
	Prompt               *string `json:"prompt"`
	Description          *string `json:"description"`
	ExampleImageFilename *string `json:"exampleImageFilename"`
}

func (r UpdateSlotVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SlotTypeID, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.ExampleImageFilename, validation.Length(0, 500)),
	)
}

func (r *UpdateSlotVariantRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

type SlotVariantResponse struct {
	ID                   int64     `json:"id"`
	SlotTypeID           int64     `json:"promptSlotTypeId"`
	SlotTypeName         string    `json:"promptSlotTypeName"`
	Name                 string    `json:"name"`
	Prompt               *string   `json:"prompt"`
	Description          *string   `json:"description"`
	ExampleImageFilename *string   `json:"exampleImageFilename"`
	ExampleImageURL      *string   `json:"exampleImageUrl"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (v *PromptSlotVariant) ToResponse(imageURL func(string) string) SlotVariantResponse {
	resp := SlotVariantResponse{
		ID:                   v.ID,
		SlotTypeID:           v.SlotTypeID,
		SlotTypeName:         v.SlotTypeName,
		Name:                 v.Name,
		Prompt:               v.Prompt,
		Description:          v.Description,
		ExampleImageFilename: v.ExampleImageFilename,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
	if v.ExampleImageFilename != nil && imageURL != nil {
		u := imageURL(*v.ExampleImageFilename)
		resp.ExampleImageURL = &u
	}
	return resp
}
