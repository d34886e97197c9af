package service

import (
	"context"

	"shop-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	GetCart(ctx context.Context, userID int64) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID int64, req model.AddItemRequest) (*model.CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req model.UpdateItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*model.CartResponse, error)
	Clear(ctx context.Context, userID int64) (*model.CartResponse, error)
	Summary(ctx context.Context, userID int64) (*model.CartSummary, error)
	// ExpireCarts abandons carts past their expiry and returns how many.
	ExpireCarts(ctx context.Context) (int64, error)
}

// ImageChecker reports a missing image as a not-found error.
type ImageChecker interface {
	EnsureExists(ctx context.Context, id int64) error
}
