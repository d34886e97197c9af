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

type slotService struct {
	types         repository.SlotTypeRepository
	variants      repository.SlotVariantRepository
	objects       ObjectRemover
	publicBaseURL string
}

func NewSlotService(
	types repository.SlotTypeRepository,
	variants repository.SlotVariantRepository,
	objects ObjectRemover,
	publicBaseURL string,
) SlotService {
	return &slotService{
		types:         types,
		variants:      variants,
		objects:       objects,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *slotService) imageURL(filename string) string {
	return s.publicBaseURL + "/" + storage.ImageKey(filename)
}

func (s *slotService) ListTypes(ctx context.Context) ([]model.PromptSlotType, error) {
	return s.types.List(ctx)
}

func (s *slotService) GetType(ctx context.Context, id int64) (*model.PromptSlotType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *slotService) CreateType(ctx context.Context, req model.CreateSlotTypeRequest) (*model.PromptSlotType, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	return s.types.Create(ctx, &model.PromptSlotType{Name: req.Name, Position: req.Position})
}

func (s *slotService) UpdateType(ctx context.Context, id int64, req model.UpdateSlotTypeRequest) (*model.PromptSlotType, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	existing, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.Patch(&existing.Name, req.Name)
	utils.Patch(&existing.Position, req.Position)
	return s.types.Update(ctx, existing)
}

func (s *slotService) DeleteType(ctx context.Context, id int64) error {
	return s.types.Delete(ctx, id)
}

func (s *slotService) ListVariants(ctx context.Context, slotTypeID *int64) ([]model.SlotVariantResponse, error) {
	variants, err := s.variants.List(ctx, slotTypeID)
	if err != nil {
		return nil, err
	}
	out := make([]model.SlotVariantResponse, len(variants))
	for i := range variants {
		out[i] = variants[i].ToResponse(s.imageURL)
	}
	return out, nil
}

func (s *slotService) GetVariant(ctx context.Context, id int64) (*model.SlotVariantResponse, error) {
	v, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := v.ToResponse(s.imageURL)
	return &resp, nil
}

func (s *slotService) CreateVariant(ctx context.Context, req model.CreateSlotVariantRequest) (*model.SlotVariantResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, req.SlotTypeID); err != nil {
		return nil, err
	}
	created, err := s.variants.Create(ctx, &model.PromptSlotVariant{
		SlotTypeID:           req.SlotTypeID,
		Name:                 req.Name,
		Prompt:               req.Prompt,
		Description:          req.Description,
		ExampleImageFilename: req.ExampleImageFilename,
	})
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse(s.imageURL)
	return &resp, nil
}

func (s *slotService) UpdateVariant(ctx context.Context, id int64, req model.UpdateSlotVariantRequest) (*model.SlotVariantResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	existing, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SlotTypeID != nil && *req.SlotTypeID != existing.SlotTypeID {
		if _, err := s.types.GetByID(ctx, *req.SlotTypeID); err != nil {
			return nil, err
		}
		existing.SlotTypeID = *req.SlotTypeID
	}
	oldImage := existing.ExampleImageFilename
	utils.Patch(&existing.Name, req.Name)
	if req.Prompt != nil {
		existing.Prompt = utils.TrimPtr(req.Prompt)
	}
	if req.Description != nil {
		existing.Description = utils.TrimPtr(req.Description)
	}
	if req.ExampleImageFilename != nil {
		existing.ExampleImageFilename = utils.TrimPtr(req.ExampleImageFilename)
	}

	updated, err := s.variants.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if oldImage != nil && (updated.ExampleImageFilename == nil || *updated.ExampleImageFilename != *oldImage) {
		s.removeImage(ctx, *oldImage)
	}
	resp := updated.ToResponse(s.imageURL)
	return &resp, nil
}

func (s *slotService) DeleteVariant(ctx context.Context, id int64) error {
	existing, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.variants.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ExampleImageFilename != nil {
		s.removeImage(ctx, *existing.ExampleImageFilename)
	}
	return nil
}

func (s *slotService) removeImage(ctx context.Context, filename string) {
	if s.objects == nil {
		return
	}
	if err := s.objects.Delete(ctx, storage.ImageKey(filename)); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("failed to delete slot variant example image")
	}
}
