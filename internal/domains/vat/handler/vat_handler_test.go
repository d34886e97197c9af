package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/domains/vat/service"
)

type mockService struct {
	mock.Mock
	service.ServiceInterface
}

func (m *mockService) Get(ctx context.Context, id int64) (*model.VatResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.VatResponse)
	return out, args.Error(1)
}

func (m *mockService) GetDefault(ctx context.Context) (*model.VatResponse, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*model.VatResponse)
	return out, args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewVatHandler(svc)
	r.GET("/api/vat/default", h.GetDefault)
	r.GET("/api/vat/:id", h.Get)
	return r
}

func TestGetDefault_ReturnsDefaultRate(t *testing.T) {
	svc := new(mockService)
	svc.On("GetDefault", mock.Anything).Return(&model.VatResponse{ID: 2, Name: "Standard", Percent: 19, IsDefault: true}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vat/default", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body model.VatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 19, body.Percent)
	assert.True(t, body.IsDefault)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetDefault_NoneConfiguredIs404(t *testing.T) {
	svc := new(mockService)
	svc.On("GetDefault", mock.Anything).Return(nil, model.ErrNoDefaultVat)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vat/default", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "VAT not found with isDefault: true")
}

func TestGet_ByID(t *testing.T) {
	svc := new(mockService)
	svc.On("Get", mock.Anything, int64(7)).Return(&model.VatResponse{ID: 7, Name: "Reduced", Percent: 7}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vat/7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"percent":7`)
}
