package service

import (
	"context"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/shared/response"
)

type ServiceInterface interface {
	CreateFromCart(ctx context.Context, userID int64, req model.CreateOrderRequest) (*model.OrderResponse, error)
	ListForUser(ctx context.Context, userID int64, page, size int) (response.Page[model.OrderResponse], error)
	// GetForUser reports orders of other users as not found.
	GetForUser(ctx context.Context, userID, id int64) (*model.OrderResponse, error)

	List(ctx context.Context, status string, page, size int) (response.Page[model.OrderResponse], error)
	Get(ctx context.Context, id int64) (*model.OrderResponse, error)
	UpdateStatus(ctx context.Context, id int64, req model.UpdateStatusRequest) (*model.OrderResponse, error)
	Delete(ctx context.Context, id int64) error
}
