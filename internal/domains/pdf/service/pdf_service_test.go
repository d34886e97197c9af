package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	articlemodel "shop-backend/internal/domains/article/model"
	articlerepo "shop-backend/internal/domains/article/repository"
	ordermodel "shop-backend/internal/domains/order/model"
	orderrepo "shop-backend/internal/domains/order/repository"
	"shop-backend/internal/domains/pdf/model"
	"shop-backend/internal/infrastructure/pdf"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, d *model.PdfDocument) (*model.PdfDocument, error) {
	args := m.Called(ctx, d)
	out, _ := args.Get(0).(*model.PdfDocument)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.PdfDocument, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.PdfDocument)
	return out, args.Error(1)
}

func (m *mockRepo) LatestForOrder(ctx context.Context, orderID int64) (*model.PdfDocument, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(*model.PdfDocument)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter model.ListFilter) ([]model.PdfDocument, int64, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]model.PdfDocument)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrders struct {
	mock.Mock
	orderrepo.RepositoryInterface
}

func (m *mockOrders) GetByID(ctx context.Context, id int64) (*ordermodel.Order, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*ordermodel.Order)
	return out, args.Error(1)
}

func (m *mockOrders) SetPdfURL(ctx context.Context, id int64, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type mockArticles struct {
	mock.Mock
	articlerepo.RepositoryInterface
}

func (m *mockArticles) GetByID(ctx context.Context, id int64) (*articlemodel.Article, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*articlemodel.Article)
	return out, args.Error(1)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) Content(ctx context.Context, id int64, thumbnail bool) ([]byte, string, error) {
	args := m.Called(ctx, id, thumbnail)
	out, _ := args.Get(0).([]byte)
	return out, args.String(1), args.Error(2)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	repo     *mockRepo
	orders   *mockOrders
	articles *mockArticles
	images   *mockImages
	storage  *mockStorage
	svc      ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(mockRepo),
		orders:   new(mockOrders),
		articles: new(mockArticles),
		images:   new(mockImages),
		storage:  new(mockStorage),
	}
	f.svc = NewPdfService(f.repo, f.orders, f.articles, f.images, f.storage, pdf.NewRenderer("Shop", "EUR"), nil)
	return f
}

func sampleOrder() *ordermodel.Order {
	return &ordermodel.Order{
		ID:                7,
		OrderNumber:       "ORD-20240601-ABCDEF12",
		CustomerFirstName: "Jane",
		CustomerLastName:  "Doe",
		CustomerEmail:     "jane@example.com",
		ShippingAddress:   ordermodel.Address{StreetAddress1: "Main St 1", City: "Berlin", PostalCode: "10115", Country: "Germany"},
		Items: []ordermodel.OrderItem{
			{ArticleName: "Mug", Quantity: 2, PricePerItem: decimal.RequireFromString("9.90"), TotalPrice: decimal.RequireFromString("19.80")},
		},
		Subtotal:       decimal.RequireFromString("19.80"),
		TaxAmount:      decimal.RequireFromString("3.76"),
		ShippingAmount: decimal.RequireFromString("4.90"),
		TotalAmount:    decimal.RequireFromString("28.46"),
		CreatedAt:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateForOrder_StoresAndLinks(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, int64(7)).Return(sampleOrder(), nil)
	f.repo.On("LatestForOrder", mock.Anything, int64(7)).Return(nil, model.ErrOrderPdfNotFound(7))
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > 5 && key[:5] == "pdfs/"
	}), mock.MatchedBy(func(data []byte) bool {
		return bytes.HasPrefix(data, []byte("%PDF"))
	}), "application/pdf").Return("", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.PdfDocument")).
		Return(&model.PdfDocument{ID: 3, Kind: model.PdfKindOrder, Filename: "order-ORD-20240601-ABCDEF12.pdf"}, nil)
	f.orders.On("SetPdfURL", mock.Anything, int64(7), "/api/pdfs/3/content").Return(nil)

	resp, err := f.svc.GenerateForOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "/api/pdfs/3/content", resp.URL)
	f.orders.AssertExpectations(t)

	var saved *model.PdfDocument
	for _, call := range f.repo.Calls {
		if call.Method == "Create" {
			saved = call.Arguments.Get(1).(*model.PdfDocument)
		}
	}
	require.NotNil(t, saved)
	assert.Equal(t, "order-ORD-20240601-ABCDEF12.pdf", saved.Filename)
	assert.Positive(t, saved.Size)
}

func TestGenerateForOrder_ReusesStoredDocument(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, int64(7)).Return(sampleOrder(), nil)
	orderID := int64(7)
	f.repo.On("LatestForOrder", mock.Anything, int64(7)).
		Return(&model.PdfDocument{ID: 9, Kind: model.PdfKindOrder, OrderID: &orderID}, nil)
	f.orders.On("SetPdfURL", mock.Anything, int64(7), "/api/pdfs/9/content").Return(nil)

	resp, err := f.svc.GenerateForOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.orders.AssertExpectations(t)
}

func TestGenerateForOrder_ConcurrentWinnerIsReturned(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, int64(7)).Return(sampleOrder(), nil)
	f.repo.On("LatestForOrder", mock.Anything, int64(7)).Return(nil, model.ErrOrderPdfNotFound(7)).Once()
	f.repo.On("LatestForOrder", mock.Anything, int64(7)).Return(&model.PdfDocument{ID: 11, Kind: model.PdfKindOrder}, nil).Once()
	f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return("", nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrOrderPdfExists)
	f.storage.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > 5 && key[:5] == "pdfs/"
	})).Return(nil)
	f.orders.On("SetPdfURL", mock.Anything, int64(7), "/api/pdfs/11/content").Return(nil)

	resp, err := f.svc.GenerateForOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	f.storage.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestGenerateForOrder_MissingOrderIsNotFound(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, int64(7)).Return(nil, ordermodel.ErrOrderNotFound(7))

	_, err := f.svc.GenerateForOrder(context.Background(), 7)

	assert.True(t, apperror.IsNotFound(err))
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateForArticle_MissingImageIsNotFound(t *testing.T) {
	f := newFixture()
	f.articles.On("GetByID", mock.Anything, int64(2)).Return(&articlemodel.Article{ID: 2, Name: "Mug"}, nil)
	f.images.On("Content", mock.Anything, int64(9), false).Return(nil, "", apperror.NotFound("Image", "id", 9))

	imageID := int64(9)
	_, err := f.svc.GenerateForArticle(context.Background(), 2, &imageID)

	assert.True(t, apperror.IsNotFound(err))
}

func TestGenerateForArticle_WithoutImage(t *testing.T) {
	f := newFixture()
	f.articles.On("GetByID", mock.Anything, int64(2)).Return(&articlemodel.Article{
		ID: 2, Name: "Mug", ArticleType: articlemodel.ArticleTypeMug, SalesPrice: decimal.RequireFromString("12.50"),
	}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return("", nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&model.PdfDocument{ID: 4, Kind: model.PdfKindArticle}, nil)

	resp, err := f.svc.GenerateForArticle(context.Background(), 2, nil)

	require.NoError(t, err)
	assert.Equal(t, model.PdfKindArticle, resp.Kind)
	f.images.AssertNotCalled(t, "Content", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(5)).Return(nil, model.ErrPdfNotFound(5))

	err := f.svc.Delete(context.Background(), 5)

	assert.True(t, apperror.IsNotFound(err))
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, model.PdfKindOrder, model.ParseKind(" order "))
	assert.Equal(t, model.PdfKindArticle, model.ParseKind("ARTICLE"))
	assert.Equal(t, model.PdfKind(""), model.ParseKind("invoice"))
}
