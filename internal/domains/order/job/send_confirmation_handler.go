package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/order/repository"
	pdfservice "shop-backend/internal/domains/pdf/service"
	"shop-backend/internal/infrastructure/email"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

// SendConfirmationHandler mails the order confirmation with the order
// document attached. A missing document is generated on the spot.
type SendConfirmationHandler struct {
	orders   repository.RepositoryInterface
	pdfs     pdfservice.ServiceInterface
	mailer   email.EmailService
	currency string
}

func NewSendConfirmationHandler(
	orders repository.RepositoryInterface,
	pdfs pdfservice.ServiceInterface,
	mailer email.EmailService,
	currency string,
) *SendConfirmationHandler {
	return &SendConfirmationHandler{orders: orders, pdfs: pdfs, mailer: mailer, currency: currency}
}

func (h *SendConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderTaskPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		return err
	}

	order, err := h.orders.GetByID(ctx, payload.OrderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return fmt.Errorf("order %d: %w", payload.OrderID, asynq.SkipRetry)
		}
		return fmt.Errorf("load order: %w", err)
	}

	attachment, err := h.attachment(ctx, payload.OrderID)
	if err != nil {
		log.Error().Err(err).Int64("order_id", payload.OrderID).Msg("failed to prepare order pdf")
		return err
	}

	data := email.OrderConfirmationData{
		To:           order.CustomerEmail,
		CustomerName: order.CustomerName(),
		OrderNumber:  order.OrderNumber,
		Total:        order.TotalAmount.StringFixed(2) + " " + h.currency,
		PDF:          attachment,
	}
	for _, it := range order.Items {
		data.Items = append(data.Items, email.OrderConfirmationItem{
			Name:     it.ArticleName,
			Quantity: it.Quantity,
			Total:    it.TotalPrice.StringFixed(2) + " " + h.currency,
		})
	}

	if err := h.mailer.SendOrderConfirmation(ctx, data); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func (h *SendConfirmationHandler) attachment(ctx context.Context, orderID int64) (*email.Attachment, error) {
	doc, content, err := h.pdfs.LatestOrderDocument(ctx, orderID)
	if apperror.IsNotFound(err) {
		if _, err = h.pdfs.GenerateForOrder(ctx, orderID); err != nil {
			return nil, err
		}
		doc, content, err = h.pdfs.LatestOrderDocument(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &email.Attachment{Filename: doc.Filename, Content: content}, nil
}
