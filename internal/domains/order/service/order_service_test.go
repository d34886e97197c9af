package service

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	articlemodel "shop-backend/internal/domains/article/model"
	articlerepo "shop-backend/internal/domains/article/repository"
	cartmodel "shop-backend/internal/domains/cart/model"
	cartrepo "shop-backend/internal/domains/cart/repository"
	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/repository"
	vatmodel "shop-backend/internal/domains/vat/model"
	vatrepo "shop-backend/internal/domains/vat/repository"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

// mockRepo hands the configured cart items to the build callback the way
// the transaction does after locking the cart, and keeps what was built.
type mockRepo struct {
	mock.Mock
	built *model.Order
}

func (m *mockRepo) CreateFromCart(ctx context.Context, cartID int64, build repository.BuildFunc) (*model.Order, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]cartmodel.CartItem)
	o, err := build(items)
	if err != nil {
		return nil, err
	}
	m.built = o
	out, _ := args.Get(1).(*model.Order)
	return out, args.Error(2)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Order)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter model.ListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	out, _ := args.Get(0).(*model.Order)
	return out, args.Error(1)
}

func (m *mockRepo) SetPdfURL(ctx context.Context, id int64, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCarts struct {
	mock.Mock
	cartrepo.RepositoryInterface
}

func (m *mockCarts) GetActiveByUser(ctx context.Context, userID int64) (*cartmodel.Cart, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(*cartmodel.Cart)
	return out, args.Error(1)
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

type mockVats struct {
	mock.Mock
	vatrepo.RepositoryInterface
}

func (m *mockVats) GetByID(ctx context.Context, id int64) (*vatmodel.Vat, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*vatmodel.Vat)
	return out, args.Error(1)
}

func (m *mockVats) GetDefault(ctx context.Context) (*vatmodel.Vat, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*vatmodel.Vat)
	return out, args.Error(1)
}

type mockEnqueuer struct{ mock.Mock }

func (m *mockEnqueuer) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	return m.Called(ctx, taskType, payload).Error(0)
}

type fixture struct {
	repo     *mockRepo
	carts    *mockCarts
	articles *mockArticles
	vats     *mockVats
	tasks    *mockEnqueuer
	counter  prometheus.Counter
	svc      *orderService
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(mockRepo),
		carts:    new(mockCarts),
		articles: new(mockArticles),
		vats:     new(mockVats),
		tasks:    new(mockEnqueuer),
		counter:  prometheus.NewCounter(prometheus.CounterOpts{Name: "test_orders_created_total"}),
	}
	f.svc = NewOrderService(f.repo, f.carts, f.articles, f.vats, f.tasks, f.counter,
		decimal.RequireFromString("4.90")).(*orderService)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func validRequest() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		CustomerEmail:     "Jane@Example.com",
		CustomerFirstName: "Jane",
		CustomerLastName:  "Doe",
		ShippingAddress: model.Address{
			StreetAddress1: "Main St 1",
			City:           "Berlin",
			PostalCode:     "10115",
			Country:        "Germany",
		},
	}
}

func TestCreateFromCart_EmptyCartIsBadRequest(t *testing.T) {
	f := newFixture()
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9}, nil)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	f.repo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
}

func TestCreateFromCart_NoCartIsBadRequest(t *testing.T) {
	f := newFixture()
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(nil, nil)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestCreateFromCart_InvalidAddress(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ShippingAddress.City = " "

	_, err := f.svc.CreateFromCart(context.Background(), 5, req)

	require.True(t, apperror.IsValidation(err))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "shippingAddress.city")
}

func TestCreateFromCart_ComputesTotalsAndEnqueues(t *testing.T) {
	f := newFixture()
	reducedID := int64(2)
	items := []cartmodel.CartItem{
		{ArticleID: 1, ArticleName: "Mug", Quantity: 2, PriceAtTime: decimal.RequireFromString("10.00")},
		{ArticleID: 2, ArticleName: "Book", Quantity: 1, PriceAtTime: decimal.RequireFromString("20.00")},
	}
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9, Items: items}, nil)
	f.vats.On("GetDefault", mock.Anything).Return(&vatmodel.Vat{Percent: 19}, nil)
	f.vats.On("GetByID", mock.Anything, reducedID).Return(&vatmodel.Vat{ID: reducedID, Percent: 7}, nil)
	f.articles.On("GetByID", mock.Anything, int64(1)).Return(&articlemodel.Article{ID: 1}, nil)
	f.articles.On("GetByID", mock.Anything, int64(2)).Return(&articlemodel.Article{ID: 2, VatID: &reducedID}, nil)
	f.repo.On("CreateFromCart", mock.Anything, int64(9)).
		Return(items, &model.Order{ID: 77, OrderNumber: "ORD-1", TotalAmount: decimal.RequireFromString("50.10")}, nil)
	f.tasks.On("Enqueue", mock.Anything, shared.TypeGenerateOrderPdf, shared.OrderTaskPayload{OrderID: 77}).Return(nil)
	f.tasks.On("Enqueue", mock.Anything, shared.TypeSendOrderConfirmation, shared.OrderTaskPayload{OrderID: 77}).Return(nil)

	resp, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)

	saved := f.repo.built
	require.NotNil(t, saved)
	assert.Equal(t, "jane@example.com", saved.CustomerEmail)
	assert.Equal(t, int64(9), saved.CartID)
	assert.Equal(t, model.OrderStatusPending, saved.Status)
	assert.Equal(t, "40", saved.Subtotal.String())
	// 20.00 * 19% + 20.00 * 7%
	assert.Equal(t, "5.2", saved.TaxAmount.String())
	assert.Equal(t, "4.9", saved.ShippingAmount.String())
	assert.Equal(t, "50.1", saved.TotalAmount.String())
	require.NotNil(t, saved.BillingAddress)
	assert.Equal(t, "Berlin", saved.BillingAddress.City)
	assert.Regexp(t, `^ORD-20240601-[0-9A-F]{8}$`, saved.OrderNumber)

	var m dto.Metric
	require.NoError(t, f.counter.Write(&m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
	f.tasks.AssertExpectations(t)
}

func TestCreateFromCart_BuildsFromLockedItems(t *testing.T) {
	f := newFixture()
	variantID := int64(4)
	variantName := "Black inside"
	// an item was added between the unlocked read and the checkout lock
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9, Items: []cartmodel.CartItem{
		{ArticleID: 1, Quantity: 1, PriceAtTime: decimal.RequireFromString("10.00")},
	}}, nil)
	locked := []cartmodel.CartItem{
		{ArticleID: 1, Quantity: 1, PriceAtTime: decimal.RequireFromString("10.00")},
		{ArticleID: 1, Quantity: 3, PriceAtTime: decimal.RequireFromString("12.00"),
			VariantID: &variantID, VariantName: &variantName},
	}
	f.vats.On("GetDefault", mock.Anything).Return(&vatmodel.Vat{Percent: 10}, nil)
	f.articles.On("GetByID", mock.Anything, int64(1)).Return(&articlemodel.Article{ID: 1}, nil)
	f.repo.On("CreateFromCart", mock.Anything, int64(9)).Return(locked, &model.Order{ID: 1}, nil)
	f.tasks.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	require.NoError(t, err)
	saved := f.repo.built
	require.Len(t, saved.Items, 2)
	assert.Equal(t, "46", saved.Subtotal.String())
	assert.Equal(t, "4.6", saved.TaxAmount.String())
	assert.Equal(t, &variantID, saved.Items[1].VariantID)
	assert.Equal(t, "Black inside", *saved.Items[1].VariantName)
	// vat is looked up once per article
	f.articles.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCreateFromCart_LockedCartEmptiedIsBadRequest(t *testing.T) {
	f := newFixture()
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9, Items: []cartmodel.CartItem{
		{ArticleID: 1, Quantity: 1, PriceAtTime: decimal.RequireFromString("10.00")},
	}}, nil)
	f.vats.On("GetDefault", mock.Anything).Return(&vatmodel.Vat{Percent: 19}, nil)
	f.repo.On("CreateFromCart", mock.Anything, int64(9)).Return([]cartmodel.CartItem{}, nil, nil)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Nil(t, f.repo.built)
}

func TestCreateFromCart_UsesCurrentVatRate(t *testing.T) {
	f := newFixture()
	vatID := int64(3)
	stale := 19
	items := []cartmodel.CartItem{{ArticleID: 1, Quantity: 1, PriceAtTime: decimal.RequireFromString("10.00")}}
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9, Items: items}, nil)
	f.vats.On("GetDefault", mock.Anything).Return(&vatmodel.Vat{Percent: 19}, nil)
	// the cached article still carries the rate from before the change
	f.articles.On("GetByID", mock.Anything, int64(1)).
		Return(&articlemodel.Article{ID: 1, VatID: &vatID, VatPercent: &stale}, nil)
	f.vats.On("GetByID", mock.Anything, vatID).Return(&vatmodel.Vat{ID: vatID, Percent: 7}, nil)
	f.repo.On("CreateFromCart", mock.Anything, int64(9)).Return(items, &model.Order{ID: 1}, nil)
	f.tasks.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	require.NoError(t, err)
	saved := f.repo.built
	assert.Equal(t, 7, saved.Items[0].VatPercent)
	assert.Equal(t, "0.7", saved.TaxAmount.String())
}

func TestCreateFromCart_EnqueueFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture()
	items := []cartmodel.CartItem{{ArticleID: 1, Quantity: 1, PriceAtTime: decimal.RequireFromString("10.00")}}
	f.carts.On("GetActiveByUser", mock.Anything, int64(5)).Return(&cartmodel.Cart{ID: 9, Items: items}, nil)
	f.vats.On("GetDefault", mock.Anything).Return(nil, vatmodel.ErrNoDefaultVat)
	f.articles.On("GetByID", mock.Anything, int64(1)).Return(&articlemodel.Article{ID: 1}, nil)
	f.repo.On("CreateFromCart", mock.Anything, int64(9)).Return(items, &model.Order{ID: 1}, nil)
	f.tasks.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.svc.CreateFromCart(context.Background(), 5, validRequest())

	assert.NoError(t, err)
}

func TestGetForUser_OtherUsersOrderIsNotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(3)).Return(&model.Order{ID: 3, UserID: 99}, nil)

	_, err := f.svc.GetForUser(context.Background(), 5, 3)

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Order not found with id: 3", err.Error())
}

func TestListForUser_FiltersByUser(t *testing.T) {
	f := newFixture()
	uid := int64(5)
	f.repo.On("List", mock.Anything, model.ListFilter{UserID: &uid, Limit: 10, Offset: 10}).
		Return([]model.Order{{ID: 1}}, int64(11), nil)

	page, err := f.svc.ListForUser(context.Background(), 5, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
}

func TestList_UnknownStatusIsValidationError(t *testing.T) {
	_, err := newFixture().svc.List(context.Background(), "lost", 0, 20)

	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateStatus_TerminalIsBadRequest(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusDelivered}, nil)

	_, err := f.svc.UpdateStatus(context.Background(), 3, model.UpdateStatusRequest{Status: "shipped"})

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_Changes(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(3), model.OrderStatusShipped).
		Return(&model.Order{ID: 3, Status: model.OrderStatusShipped}, nil)

	resp, err := f.svc.UpdateStatus(context.Background(), 3, model.UpdateStatusRequest{Status: "shipped"})

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, resp.Status)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(8)).Return(nil, model.ErrOrderNotFound(8))

	err := f.svc.Delete(context.Background(), 8)

	assert.True(t, apperror.IsNotFound(err))
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
