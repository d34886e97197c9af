package service

import (
	"context"

	"shop-backend/internal/domains/prompt/model"
)

type PromptService interface {
	List(ctx context.Context) ([]model.PromptResponse, error)
	ListActive(ctx context.Context) ([]model.PromptResponse, error)
	Get(ctx context.Context, id int64) (*model.PromptResponse, error)
	SearchByTitle(ctx context.Context, title string) ([]model.PromptResponse, error)
	Create(ctx context.Context, req model.CreatePromptRequest) (*model.PromptResponse, error)
	Update(ctx context.Context, id int64, req model.UpdatePromptRequest) (*model.PromptResponse, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	List(ctx context.Context) ([]model.PromptCategory, error)
	Get(ctx context.Context, id int64) (*model.PromptCategory, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.PromptCategory, error)
	Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.PromptCategory, error)
	Delete(ctx context.Context, id int64) error

	ListSubcategories(ctx context.Context, categoryID *int64) ([]model.PromptSubcategory, error)
	GetSubcategory(ctx context.Context, id int64) (*model.PromptSubcategory, error)
	CreateSubcategory(ctx context.Context, req model.CreateSubcategoryRequest) (*model.PromptSubcategory, error)
	UpdateSubcategory(ctx context.Context, id int64, req model.UpdateSubcategoryRequest) (*model.PromptSubcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

// SlotService manages slot types and the variants prompts are composed of.
type SlotService interface {
	ListTypes(ctx context.Context) ([]model.PromptSlotType, error)
	GetType(ctx context.Context, id int64) (*model.PromptSlotType, error)
	CreateType(ctx context.Context, req model.CreateSlotTypeRequest) (*model.PromptSlotType, error)
	UpdateType(ctx context.Context, id int64, req model.UpdateSlotTypeRequest) (*model.PromptSlotType, error)
	DeleteType(ctx context.Context, id int64) error

	ListVariants(ctx context.Context, slotTypeID *int64) ([]model.SlotVariantResponse, error)
	GetVariant(ctx context.Context, id int64) (*model.SlotVariantResponse, error)
	CreateVariant(ctx context.Context, req model.CreateSlotVariantRequest) (*model.SlotVariantResponse, error)
	UpdateVariant(ctx context.Context, id int64, req model.UpdateSlotVariantRequest) (*model.SlotVariantResponse, error)
	DeleteVariant(ctx context.Context, id int64) error
}

// ObjectRemover deletes stored objects; storage.ObjectStorage satisfies it.
type ObjectRemover interface {
	Delete(ctx context.Context, key string) error
}
