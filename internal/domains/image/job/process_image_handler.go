package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/image/service"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

// ProcessImageHandler builds the thumbnail of a freshly uploaded image.
type ProcessImageHandler struct {
	images service.ServiceInterface
}

func NewProcessImageHandler(images service.ServiceInterface) *ProcessImageHandler {
	return &ProcessImageHandler{images: images}
}

func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ImageTaskPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		return err
	}

	if err := h.images.GenerateThumbnail(ctx, payload.ImageID); err != nil {
		if apperror.IsNotFound(err) {
			// deleted before the worker got to it
			log.Warn().Int64("image_id", payload.ImageID).Msg("image vanished, skipping thumbnail")
			return fmt.Errorf("image %d: %w", payload.ImageID, asynq.SkipRetry)
		}
		log.Error().Err(err).Int64("image_id", payload.ImageID).Msg("failed to generate thumbnail")
		return fmt.Errorf("generate thumbnail: %w", err)
	}
	return nil
}
