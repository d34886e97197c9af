package repository

import (
	"context"

	"shop-backend/internal/domains/pdf/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, d *model.PdfDocument) (*model.PdfDocument, error)
	GetByID(ctx context.Context, id int64) (*model.PdfDocument, error)
	// LatestForOrder returns the most recent document generated for orderID.
	LatestForOrder(ctx context.Context, orderID int64) (*model.PdfDocument, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.PdfDocument, int64, error)
	Delete(ctx context.Context, id int64) error
}
