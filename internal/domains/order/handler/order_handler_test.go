package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/service"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
)

type mockService struct {
	mock.Mock
	service.ServiceInterface
}

func (m *mockService) CreateFromCart(ctx context.Context, userID int64, req model.CreateOrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, userID, req)
	out, _ := args.Get(0).(*model.OrderResponse)
	return out, args.Error(1)
}

func (m *mockService) GetForUser(ctx context.Context, userID, id int64) (*model.OrderResponse, error) {
	args := m.Called(ctx, userID, id)
	out, _ := args.Get(0).(*model.OrderResponse)
	return out, args.Error(1)
}

func (m *mockService) ListForUser(ctx context.Context, userID int64, page, size int) (response.Page[model.OrderResponse], error) {
	args := m.Called(ctx, userID, page, size)
	return args.Get(0).(response.Page[model.OrderResponse]), args.Error(1)
}

func setupRouter(svc *mockService, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID > 0 {
		r.Use(func(c *gin.Context) {
			c.Set(shared.ContextUserID, userID)
			c.Next()
		})
	}
	h := NewOrderHandler(svc)
	r.POST("/api/orders", h.Create)
	r.GET("/api/orders", h.ListMine)
	r.GET("/api/orders/:id", h.GetMine)
	return r
}

func TestCreate_WithoutUserIs401(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(new(mockService), 0).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_EmptyCartIs400(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateFromCart", mock.Anything, int64(5), mock.Anything).Return(nil, model.ErrEmptyCart())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customerEmail":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc, 5).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot create order from empty cart")
}

func TestCreate_Returns201(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateFromCart", mock.Anything, int64(5), mock.Anything).
		Return(&model.OrderResponse{ID: 1, OrderNumber: "ORD-1"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc, 5).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"orderNumber":"ORD-1"`)
}

func TestGetMine_NotOwnedIs404(t *testing.T) {
	svc := new(mockService)
	svc.On("GetForUser", mock.Anything, int64(5), int64(9)).Return(nil, model.ErrOrderNotFound(9))

	w := httptest.NewRecorder()
	setupRouter(svc, 5).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMine_UsesPagination(t *testing.T) {
	svc := new(mockService)
	svc.On("ListForUser", mock.Anything, int64(5), 2, 5).
		Return(response.NewPage([]model.OrderResponse{}, 2, 5, 0), nil)

	w := httptest.NewRecorder()
	setupRouter(svc, 5).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders?page=2&size=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
