package main

import (
	"github.com/hibiken/asynq"

	cartJob "shop-backend/internal/domains/cart/job"
	imageJob "shop-backend/internal/domains/image/job"
	orderJob "shop-backend/internal/domains/order/job"
	"shop-backend/internal/shared"
	"shop-backend/pkg/container"
)

// HandlerRegistry holds every task handler the worker serves.
type HandlerRegistry struct {
	generateOrderPdf      *orderJob.GeneratePdfHandler
	sendOrderConfirmation *orderJob.SendConfirmationHandler
	processImage          *imageJob.ProcessImageHandler
	expireCarts           *cartJob.ExpireCartsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		generateOrderPdf:      orderJob.NewGeneratePdfHandler(c.PdfService),
		sendOrderConfirmation: orderJob.NewSendConfirmationHandler(c.OrderRepo, c.PdfService, c.Mailer, c.Config.Shop.Currency),
		processImage:          imageJob.NewProcessImageHandler(c.ImageService),
		expireCarts:           cartJob.NewExpireCartsHandler(c.CartService),
	}
}

// RegisterHandlers binds each task type to its handler.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeGenerateOrderPdf, h.generateOrderPdf.ProcessTask)
	mux.HandleFunc(shared.TypeSendOrderConfirmation, h.sendOrderConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeProcessImage, h.processImage.ProcessTask)
	mux.HandleFunc(shared.TypeExpireCarts, h.expireCarts.ProcessTask)
}
