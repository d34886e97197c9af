package repository

import (
	"context"
	"time"

	"shop-backend/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// GetActiveByUser returns the user's ACTIVE cart with its items, or
	// nil when the user has none.
	GetActiveByUser(ctx context.Context, userID int64) (*model.Cart, error)
	// GetOrCreateActive is safe against concurrent first requests.
	GetOrCreateActive(ctx context.Context, userID int64, expiresAt time.Time) (*model.Cart, error)
	// AddItem merges into an existing line with the same article, variant,
	// prompt and generated image, otherwise appends a new line. Item writes
	// fail with a conflict once the cart has left ACTIVE.
	AddItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	ClearItems(ctx context.Context, cartID int64) error
	Touch(ctx context.Context, cartID int64, expiresAt time.Time) error
	// AbandonExpired marks ACTIVE carts past their expiry as ABANDONED.
	AbandonExpired(ctx context.Context, now time.Time) (int64, error)
}
