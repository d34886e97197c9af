package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	articlemodel "shop-backend/internal/domains/article/model"
	articlerepo "shop-backend/internal/domains/article/repository"
	ordermodel "shop-backend/internal/domains/order/model"
	orderrepo "shop-backend/internal/domains/order/repository"
	"shop-backend/internal/domains/pdf/model"
	"shop-backend/internal/domains/pdf/repository"
	"shop-backend/internal/infrastructure/pdf"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/response"
)

const pdfContentType = "application/pdf"

type pdfService struct {
	repo      repository.RepositoryInterface
	orders    orderrepo.RepositoryInterface
	articles  articlerepo.RepositoryInterface
	images    ImageSource
	storage   storage.ObjectStorage
	renderer  Renderer
	generated *prometheus.CounterVec
}

func NewPdfService(
	repo repository.RepositoryInterface,
	orders orderrepo.RepositoryInterface,
	articles articlerepo.RepositoryInterface,
	images ImageSource,
	objects storage.ObjectStorage,
	renderer Renderer,
	generated *prometheus.CounterVec,
) ServiceInterface {
	return &pdfService{
		repo:      repo,
		orders:    orders,
		articles:  articles,
		images:    images,
		storage:   objects,
		renderer:  renderer,
		generated: generated,
	}
}

func invoiceFor(o *ordermodel.Order) pdf.OrderInvoice {
	inv := pdf.OrderInvoice{
		OrderNumber:     o.OrderNumber,
		OrderDate:       o.CreatedAt,
		CustomerName:    o.CustomerName(),
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress.Lines(),
		Subtotal:        o.Subtotal,
		Tax:             o.TaxAmount,
		Shipping:        o.ShippingAmount,
		Total:           o.TotalAmount,
	}
	if o.BillingAddress != nil {
		inv.BillingAddress = o.BillingAddress.Lines()
	}
	if o.Notes != nil {
		inv.Notes = *o.Notes
	}
	for _, it := range o.Items {
		inv.Lines = append(inv.Lines, pdf.InvoiceLine{
			Description: it.ArticleName,
			Quantity:    it.Quantity,
			UnitPrice:   it.PricePerItem,
			Total:       it.TotalPrice,
		})
	}
	return inv
}

// GenerateForOrder renders the invoice once per order. Later calls, such
// as task retries, re-link and return the stored document.
func (s *pdfService) GenerateForOrder(ctx context.Context, orderID int64) (*model.PdfResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.LatestForOrder(ctx, order.ID)
	if apperror.IsNotFound(err) {
		doc, err = s.renderOrder(ctx, order)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetPdfURL(ctx, order.ID, model.ContentPath(doc.ID)); err != nil {
		return nil, err
	}

	resp := doc.ToResponse()
	return &resp, nil
}

func (s *pdfService) renderOrder(ctx context.Context, order *ordermodel.Order) (*model.PdfDocument, error) {
	data, err := s.renderer.RenderOrder(invoiceFor(order))
	if err != nil {
		return nil, err
	}

	doc, err := s.store(ctx, &model.PdfDocument{
		Kind:     model.PdfKindOrder,
		OrderID:  &order.ID,
		Filename: "order-" + order.OrderNumber + ".pdf",
	}, data)
	if errors.Is(err, model.ErrOrderPdfExists) {
		// a concurrent generation committed first
		return s.repo.LatestForOrder(ctx, order.ID)
	}
	return doc, err
}

func (s *pdfService) GenerateForArticle(ctx context.Context, articleID int64, imageID *int64) (*model.PdfResponse, error) {
	var (
		article *articlemodel.Article
		artwork []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.articles.GetByID(gctx, articleID)
		article = a
		return err
	})
	if imageID != nil {
		g.Go(func() error {
			data, _, err := s.images.Content(gctx, *imageID, false)
			artwork = data
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sheet := pdf.ArticleSheet{
		Name:        article.Name,
		ArticleType: string(article.ArticleType),
		Price:       article.SalesPrice,
		ArtworkPNG:  artwork,
	}
	if article.DescriptionLong != nil {
		sheet.Description = *article.DescriptionLong
	} else if article.DescriptionShort != nil {
		sheet.Description = *article.DescriptionShort
	}
	if article.SupplierArticleNumber != nil {
		sheet.SupplierArticleNumber = *article.SupplierArticleNumber
	}

	data, err := s.renderer.RenderArticle(sheet)
	if err != nil {
		return nil, err
	}

	doc, err := s.store(ctx, &model.PdfDocument{
		Kind:      model.PdfKindArticle,
		ArticleID: &article.ID,
		Filename:  fmt.Sprintf("article-%d.pdf", article.ID),
	}, data)
	if err != nil {
		return nil, err
	}
	resp := doc.ToResponse()
	return &resp, nil
}

// store uploads data under a unique key and records the document.
func (s *pdfService) store(ctx context.Context, doc *model.PdfDocument, data []byte) (*model.PdfDocument, error) {
	doc.StorageKey = storage.PdfKey(uuid.NewString() + ".pdf")
	doc.Size = int64(len(data))

	if _, err := s.storage.Upload(ctx, doc.StorageKey, data, pdfContentType); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.removeObject(ctx, doc.StorageKey)
		return nil, err
	}

	if s.generated != nil {
		s.generated.WithLabelValues(strings.ToLower(string(created.Kind))).Inc()
	}
	log.Info().Int64("pdf_id", created.ID).Str("kind", string(created.Kind)).Int64("size", created.Size).Msg("pdf generated")
	return created, nil
}

func (s *pdfService) List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.PdfResponse], error) {
	filter.Limit = size
	filter.Offset = page * size

	docs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return response.Page[model.PdfResponse]{}, err
	}

	out := make([]model.PdfResponse, len(docs))
	for i := range docs {
		out[i] = docs[i].ToResponse()
	}
	return response.NewPage(out, page, size, total), nil
}

func (s *pdfService) Get(ctx context.Context, id int64) (*model.PdfResponse, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := doc.ToResponse()
	return &resp, nil
}

func (s *pdfService) Content(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, "", err
	}
	return data, doc.Filename, nil
}

func (s *pdfService) LatestOrderDocument(ctx context.Context, orderID int64) (*model.PdfDocument, []byte, error) {
	doc, err := s.repo.LatestForOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

func (s *pdfService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeObject(ctx, doc.StorageKey)
	return nil
}

func (s *pdfService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove stored pdf")
	}
}
