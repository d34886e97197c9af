package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/domains/article/repository"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/utils"
)

type variantService struct {
	repo     repository.VariantRepository
	articles repository.RepositoryInterface
}

func NewVariantService(repo repository.VariantRepository, articles repository.RepositoryInterface) VariantService {
	return &variantService{repo: repo, articles: articles}
}

func (s *variantService) List(ctx context.Context, articleID int64, activeOnly bool) ([]model.MugVariant, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.repo.ListByArticle(ctx, articleID, activeOnly)
}

// Create makes the first variant of an article its default.
func (s *variantService) Create(ctx context.Context, articleID int64, req model.CreateMugVariantRequest) (*model.MugVariant, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.ArticleType != model.ArticleTypeMug {
		return nil, model.ErrNotAMug(articleID)
	}

	isDefault := req.IsDefault
	if !isDefault {
		existing, err := s.repo.ListByArticle(ctx, articleID, false)
		if err != nil {
			return nil, err
		}
		isDefault = len(existing) == 0
	}
	active := true
	utils.Patch(&active, req.Active)

	created, err := s.repo.Create(ctx, &model.MugVariant{
		ArticleID:            articleID,
		InsideColorCode:      req.InsideColorCode,
		OutsideColorCode:     req.OutsideColorCode,
		Name:                 req.Name,
		ArticleVariantNumber: req.ArticleVariantNumber,
		IsDefault:            isDefault,
		Active:               active,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("article_id", articleID).Int64("variant_id", created.ID).Msg("mug variant created")
	return created, nil
}

func (s *variantService) Update(ctx context.Context, articleID, variantID int64, req model.UpdateMugVariantRequest) (*model.MugVariant, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	existing, err := s.owned(ctx, articleID, variantID)
	if err != nil {
		return nil, err
	}

	utils.Patch(&existing.Name, req.Name)
	utils.Patch(&existing.InsideColorCode, req.InsideColorCode)
	utils.Patch(&existing.OutsideColorCode, req.OutsideColorCode)
	utils.Patch(&existing.IsDefault, req.IsDefault)
	utils.Patch(&existing.Active, req.Active)
	if req.ArticleVariantNumber != nil {
		existing.ArticleVariantNumber = utils.TrimPtr(req.ArticleVariantNumber)
	}
	return s.repo.Update(ctx, existing)
}

func (s *variantService) Delete(ctx context.Context, articleID, variantID int64) error {
	if _, err := s.owned(ctx, articleID, variantID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, variantID)
}

func (s *variantService) owned(ctx context.Context, articleID, variantID int64) (*model.MugVariant, error) {
	v, err := s.repo.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v.ArticleID != articleID {
		return nil, model.ErrMugVariantNotFound(variantID)
	}
	return v, nil
}
