package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"shop-backend/internal/domains/cart/service"
)

// ExpireCartsHandler runs the periodic cart expiry.
type ExpireCartsHandler struct {
	carts service.ServiceInterface
}

func NewExpireCartsHandler(carts service.ServiceInterface) *ExpireCartsHandler {
	return &ExpireCartsHandler{carts: carts}
}

func (h *ExpireCartsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if _, err := h.carts.ExpireCarts(ctx); err != nil {
		return fmt.Errorf("expire carts: %w", err)
	}
	return nil
}
