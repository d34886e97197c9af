package repository

import (
	"context"

	cartmodel "shop-backend/internal/domains/cart/model"
	"shop-backend/internal/domains/order/model"
)

// BuildFunc turns the locked cart's items into the order to insert.
type BuildFunc func(items []cartmodel.CartItem) (*model.Order, error)

type RepositoryInterface interface {
	// CreateFromCart locks the ACTIVE cart, builds the order from the items
	// read under that lock, inserts it and marks the cart CONVERTED, all in
	// one transaction.
	CreateFromCart(ctx context.Context, cartID int64, build BuildFunc) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	SetPdfURL(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}
