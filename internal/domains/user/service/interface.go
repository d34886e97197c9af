package service

import (
	"context"

	"shop-backend/internal/domains/user/model"
	"shop-backend/internal/shared/response"
)

type ServiceInterface interface {
	List(ctx context.Context, search string, page, size int) (response.Page[model.UserResponse], error)
	Get(ctx context.Context, id int64) (*model.UserResponse, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}
