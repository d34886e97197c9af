package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/user/model"
	"shop-backend/internal/shared/response"
)

type mockService struct{ mock.Mock }

func (m *mockService) List(ctx context.Context, search string, page, size int) (response.Page[model.UserResponse], error) {
	args := m.Called(ctx, search, page, size)
	return args.Get(0).(response.Page[model.UserResponse]), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id int64) (*model.UserResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.UserResponse)
	return out, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*model.UserResponse)
	return out, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.UserResponse, error) {
	args := m.Called(ctx, id, req)
	out, _ := args.Get(0).(*model.UserResponse)
	return out, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)
	r.GET("/api/users/:id", h.Get)
	r.POST("/api/users", h.Create)
	r.DELETE("/api/users/:id", h.Delete)
	return r
}

func TestCreate_DuplicateEmailIs409(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrEmailExists("a@b.c"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"username":"abc","email":"a@b.c","password":"12345678"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body.Error)
	assert.Equal(t, "/api/users", body.Path)
	assert.Equal(t, "User already exists with email: a@b.c", body.Message)
}

func TestGet_MissingIs404(t *testing.T) {
	svc := new(mockService)
	svc.On("Get", mock.Anything, int64(42)).Return(nil, model.ErrUserNotFound(42))

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/42", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found with id: 42")
}

func TestGet_NonNumericIDIs400(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(new(mockService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_Returns204(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, int64(3)).Return(nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/3", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
