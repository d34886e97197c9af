package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	articlerepo "shop-backend/internal/domains/article/repository"
	"shop-backend/internal/domains/cart/model"
	"shop-backend/internal/domains/cart/repository"
	promptrepo "shop-backend/internal/domains/prompt/repository"
	"shop-backend/internal/shared/apperror"
	"shop-backend/pkg/logger"
)

type cartService struct {
	repo     repository.RepositoryInterface
	articles articlerepo.RepositoryInterface
	variants articlerepo.VariantRepository
	prompts  promptrepo.PromptRepository
	images   ImageChecker
	ttl      time.Duration
	now      func() time.Time
}

func NewCartService(
	repo repository.RepositoryInterface,
	articles articlerepo.RepositoryInterface,
	variants articlerepo.VariantRepository,
	prompts promptrepo.PromptRepository,
	images ImageChecker,
	ttl time.Duration,
) ServiceInterface {
	return &cartService{
		repo:     repo,
		articles: articles,
		variants: variants,
		prompts:  prompts,
		images:   images,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *cartService) activeCart(ctx context.Context, userID int64) (*model.Cart, error) {
	return s.repo.GetOrCreateActive(ctx, userID, s.now().Add(s.ttl))
}

// reload returns the current state of the user's cart after a write and
// pushes its expiry forward.
func (s *cartService) reload(ctx context.Context, userID, cartID int64) (*model.CartResponse, error) {
	if err := s.repo.Touch(ctx, cartID, s.now().Add(s.ttl)); err != nil {
		log.Warn().Err(err).Int64("cart_id", cartID).Msg("failed to extend cart expiry")
	}
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*model.CartResponse, error) {
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) AddItem(ctx context.Context, userID int64, req model.AddItemRequest) (*model.CartResponse, error) {
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	article, err := s.articles.GetByID(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.Active {
		return nil, model.ErrArticleInactive(article.ID)
	}
	if req.VariantID != nil {
		if err := s.checkVariant(ctx, article.ID, *req.VariantID); err != nil {
			return nil, err
		}
	}
	if req.PromptID != nil {
		if _, err := s.prompts.GetByID(ctx, *req.PromptID); err != nil {
			return nil, err
		}
	}
	if req.GeneratedImageID != nil && s.images != nil {
		if err := s.images.EnsureExists(ctx, *req.GeneratedImageID); err != nil {
			return nil, err
		}
	}

	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.AddItem(ctx, &model.CartItem{
		CartID:           cart.ID,
		ArticleID:        article.ID,
		Quantity:         req.Quantity,
		PriceAtTime:      article.SalesPrice,
		OriginalPrice:    article.SalesPrice,
		VariantID:        req.VariantID,
		PromptID:         req.PromptID,
		GeneratedImageID: req.GeneratedImageID,
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, userID, cart.ID)
}

// checkVariant accepts only active variants of the article being added.
func (s *cartService) checkVariant(ctx context.Context, articleID, variantID int64) error {
	variant, err := s.variants.GetByID(ctx, variantID)
	if apperror.IsNotFound(err) {
		return model.ErrVariantMismatch(variantID, articleID)
	}
	if err != nil {
		return err
	}
	if variant.ArticleID != articleID || !variant.Active {
		return model.ErrVariantMismatch(variantID, articleID)
	}
	return nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, req model.UpdateItemRequest) (*model.CartResponse, error) {
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity); err != nil {
		return nil, err
	}
	return s.reload(ctx, userID, cart.ID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) (*model.CartResponse, error) {
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.reload(ctx, userID, cart.ID)
}

func (s *cartService) Clear(ctx context.Context, userID int64) (*model.CartResponse, error) {
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, userID, cart.ID)
}

// Summary does not create a cart for users without one.
func (s *cartService) Summary(ctx context.Context, userID int64) (*model.CartSummary, error) {
	cart, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &model.Cart{}
	}
	summary := cart.Summary()
	return &summary, nil
}

func (s *cartService) ExpireCarts(ctx context.Context) (int64, error) {
	n, err := s.repo.AbandonExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("abandoned expired carts", map[string]interface{}{"count": n})
	}
	return n, nil
}
