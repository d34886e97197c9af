package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	pdfservice "shop-backend/internal/domains/pdf/service"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

// GeneratePdfHandler renders the order document after checkout.
type GeneratePdfHandler struct {
	pdfs pdfservice.ServiceInterface
}

func NewGeneratePdfHandler(pdfs pdfservice.ServiceInterface) *GeneratePdfHandler {
	return &GeneratePdfHandler{pdfs: pdfs}
}

func (h *GeneratePdfHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderTaskPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		return err
	}

	doc, err := h.pdfs.GenerateForOrder(ctx, payload.OrderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			log.Warn().Int64("order_id", payload.OrderID).Msg("order vanished, skipping pdf")
			return fmt.Errorf("order %d: %w", payload.OrderID, asynq.SkipRetry)
		}
		log.Error().Err(err).Int64("order_id", payload.OrderID).Msg("failed to generate order pdf")
		return fmt.Errorf("generate order pdf: %w", err)
	}

	log.Info().Int64("order_id", payload.OrderID).Int64("pdf_id", doc.ID).Msg("order pdf generated")
	return nil
}
