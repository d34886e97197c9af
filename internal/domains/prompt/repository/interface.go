package repository

import (
	"context"

	"shop-backend/internal/domains/prompt/model"
)

type PromptRepository interface {
	Create(ctx context.Context, p *model.Prompt) (*model.Prompt, error)
	GetByID(ctx context.Context, id int64) (*model.Prompt, error)
	List(ctx context.Context, activeOnly bool) ([]model.Prompt, error)
	// SearchByTitle matches title case-insensitively as a substring.
	SearchByTitle(ctx context.Context, title string) ([]model.Prompt, error)
	Update(ctx context.Context, p *model.Prompt) (*model.Prompt, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error)
	GetByID(ctx context.Context, id int64) (*model.PromptCategory, error)
	List(ctx context.Context) ([]model.PromptCategory, error)
	Update(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error)
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type SubcategoryRepository interface {
	Create(ctx context.Context, s *model.PromptSubcategory) (*model.PromptSubcategory, error)
	GetByID(ctx context.Context, id int64) (*model.PromptSubcategory, error)
	// List returns every subcategory, or only those of categoryID when set.
	List(ctx context.Context, categoryID *int64) ([]model.PromptSubcategory, error)
	Update(ctx context.Context, s *model.PromptSubcategory) (*model.PromptSubcategory, error)
	Delete(ctx context.Context, id int64) error
}

type SlotTypeRepository interface {
	Create(ctx context.Context, t *model.PromptSlotType) (*model.PromptSlotType, error)
	GetByID(ctx context.Context, id int64) (*model.PromptSlotType, error)
	List(ctx context.Context) ([]model.PromptSlotType, error)
	Update(ctx context.Context, t *model.PromptSlotType) (*model.PromptSlotType, error)
	// Delete fails with a conflict while variants reference the type.
	Delete(ctx context.Context, id int64) error
}

type SlotVariantRepository interface {
	Create(ctx context.Context, v *model.PromptSlotVariant) (*model.PromptSlotVariant, error)
	GetByID(ctx context.Context, id int64) (*model.PromptSlotVariant, error)
	// GetByIDs returns the variants that exist, ordered by slot type
	// position. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]model.PromptSlotVariant, error)
	List(ctx context.Context, slotTypeID *int64) ([]model.PromptSlotVariant, error)
	Update(ctx context.Context, v *model.PromptSlotVariant) (*model.PromptSlotVariant, error)
	// Delete fails with a conflict while prompts reference the variant.
	Delete(ctx context.Context, id int64) error
}
