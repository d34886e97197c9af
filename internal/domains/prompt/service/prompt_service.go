package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/domains/prompt/repository"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/utils"
)

type promptService struct {
	repo          repository.PromptRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	slots         repository.SlotVariantRepository
	objects       ObjectRemover
	publicBaseURL string
}

func NewPromptService(
	repo repository.PromptRepository,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	slots repository.SlotVariantRepository,
	objects ObjectRemover,
	publicBaseURL string,
) PromptService {
	return &promptService{
		repo:          repo,
		categories:    categories,
		subcategories: subcategories,
		slots:         slots,
		objects:       objects,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *promptService) imageURL(filename string) string {
	return s.publicBaseURL + "/" + storage.ImageKey(filename)
}

func (s *promptService) toResponses(prompts []model.Prompt) []model.PromptResponse {
	out := make([]model.PromptResponse, len(prompts))
	for i := range prompts {
		out[i] = prompts[i].ToResponse(s.imageURL)
	}
	return out
}

func (s *promptService) List(ctx context.Context) ([]model.PromptResponse, error) {
	prompts, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.toResponses(prompts), nil
}

func (s *promptService) ListActive(ctx context.Context) ([]model.PromptResponse, error) {
	prompts, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.toResponses(prompts), nil
}

func (s *promptService) Get(ctx context.Context, id int64) (*model.PromptResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse(s.imageURL)
	return &resp, nil
}

// SearchByTitle returns every prompt whose title contains title, ignoring
// case. A blank query returns all prompts.
func (s *promptService) SearchByTitle(ctx context.Context, title string) ([]model.PromptResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.List(ctx)
	}
	prompts, err := s.repo.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.toResponses(prompts), nil
}

func (s *promptService) Create(ctx context.Context, req model.CreatePromptRequest) (*model.PromptResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, req.CategoryID, req.SubcategoryID)
	if err != nil {
		return nil, err
	}
	slots, err := s.resolveSlots(ctx, req.SlotIDs)
	if err != nil {
		return nil, err
	}

	active := true
	utils.Patch(&active, req.Active)

	created, err := s.repo.Create(ctx, &model.Prompt{
		Title:                req.Title,
		PromptText:           req.PromptText,
		CategoryID:           categoryID,
		SubcategoryID:        req.SubcategoryID,
		Active:               active,
		ExampleImageFilename: req.ExampleImageFilename,
		Slots:                slots,
	})
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse(s.imageURL)
	return &resp, nil
}

func (s *promptService) Update(ctx context.Context, id int64, req model.UpdatePromptRequest) (*model.PromptResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A new category drops a subcategory that was not re-sent.
	subcategoryID := existing.SubcategoryID
	if req.SubcategoryID != nil {
		subcategoryID = req.SubcategoryID
	} else if req.CategoryID != nil && (existing.CategoryID == nil || *existing.CategoryID != *req.CategoryID) {
		subcategoryID = nil
	}
	categoryID := existing.CategoryID
	if req.CategoryID != nil {
		categoryID = req.CategoryID
	} else if req.SubcategoryID != nil {
		categoryID = nil
	}
	categoryID, err = s.resolveCategory(ctx, categoryID, subcategoryID)
	if err != nil {
		return nil, err
	}
	if req.SlotIDs != nil {
		slots, err := s.resolveSlots(ctx, *req.SlotIDs)
		if err != nil {
			return nil, err
		}
		existing.Slots = slots
	}

	oldImage := existing.ExampleImageFilename

	utils.Patch(&existing.Title, req.Title)
	utils.Patch(&existing.Active, req.Active)
	existing.CategoryID = categoryID
	existing.SubcategoryID = subcategoryID
	if req.PromptText != nil {
		existing.PromptText = utils.TrimPtr(req.PromptText)
	}
	if req.ExampleImageFilename != nil {
		existing.ExampleImageFilename = utils.TrimPtr(req.ExampleImageFilename)
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	if oldImage != nil && (updated.ExampleImageFilename == nil || *updated.ExampleImageFilename != *oldImage) {
		s.removeImage(ctx, *oldImage)
	}

	resp := updated.ToResponse(s.imageURL)
	return &resp, nil
}

func (s *promptService) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ExampleImageFilename != nil {
		s.removeImage(ctx, *existing.ExampleImageFilename)
	}
	return nil
}

// resolveCategory checks the references and returns the category to store.
// A subcategory without a category implies its parent.
func (s *promptService) resolveCategory(ctx context.Context, categoryID, subcategoryID *int64) (*int64, error) {
	if subcategoryID != nil {
		sub, err := s.subcategories.GetByID(ctx, *subcategoryID)
		if err != nil {
			return nil, err
		}
		if categoryID == nil {
			parent := sub.PromptCategoryID
			return &parent, nil
		}
		if *categoryID != sub.PromptCategoryID {
			return nil, model.ErrSubcategoryMismatch(sub.ID, *categoryID)
		}
	}
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	return categoryID, nil
}

// resolveSlots loads the slot variants, ordered by slot type position.
// Duplicate ids collapse; an unknown id is not found.
func (s *promptService) resolveSlots(ctx context.Context, ids []int64) ([]model.PromptSlotVariant, error) {
	if len(ids) == 0 {
		return []model.PromptSlotVariant{}, nil
	}
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	slots, err := s.slots.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(slots) != len(unique) {
		found := make(map[int64]bool, len(slots))
		for _, v := range slots {
			found[v.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, model.ErrSlotVariantNotFound(id)
			}
		}
	}
	return slots, nil
}

// removeImage is best effort: the prompt row is already consistent.
func (s *promptService) removeImage(ctx context.Context, filename string) {
	if s.objects == nil {
		return
	}
	if err := s.objects.Delete(ctx, storage.ImageKey(filename)); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("failed to delete prompt example image")
	}
}
