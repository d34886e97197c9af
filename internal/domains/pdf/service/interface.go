package service

import (
	"context"

	"shop-backend/internal/domains/pdf/model"
	"shop-backend/internal/infrastructure/pdf"
	"shop-backend/internal/shared/response"
)

type ServiceInterface interface {
	GenerateForOrder(ctx context.Context, orderID int64) (*model.PdfResponse, error)
	GenerateForArticle(ctx context.Context, articleID int64, imageID *int64) (*model.PdfResponse, error)
	List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.PdfResponse], error)
	Get(ctx context.Context, id int64) (*model.PdfResponse, error)
	// Content returns the document bytes and its download filename.
	Content(ctx context.Context, id int64) ([]byte, string, error)
	// LatestOrderDocument returns the newest order document and its bytes.
	LatestOrderDocument(ctx context.Context, orderID int64) (*model.PdfDocument, []byte, error)
	Delete(ctx context.Context, id int64) error
}

// Renderer is satisfied by *pdf.Renderer.
type Renderer interface {
	RenderOrder(inv pdf.OrderInvoice) ([]byte, error)
	RenderArticle(sheet pdf.ArticleSheet) ([]byte, error)
}

// ImageSource is satisfied by the image service.
type ImageSource interface {
	Content(ctx context.Context, id int64, thumbnail bool) ([]byte, string, error)
}
