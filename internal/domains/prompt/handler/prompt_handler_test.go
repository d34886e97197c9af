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

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/domains/prompt/service"
)

type mockPrompts struct {
	mock.Mock
	service.PromptService
}

func (m *mockPrompts) ListActive(ctx context.Context) ([]model.PromptResponse, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.PromptResponse)
	return out, args.Error(1)
}

func (m *mockPrompts) SearchByTitle(ctx context.Context, title string) ([]model.PromptResponse, error) {
	args := m.Called(ctx, title)
	out, _ := args.Get(0).([]model.PromptResponse)
	return out, args.Error(1)
}

func (m *mockPrompts) Get(ctx context.Context, id int64) (*model.PromptResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.PromptResponse)
	return out, args.Error(1)
}

type mockSlots struct {
	mock.Mock
	service.SlotService
}

func (m *mockSlots) ListVariants(ctx context.Context, slotTypeID *int64) ([]model.SlotVariantResponse, error) {
	args := m.Called(ctx, slotTypeID)
	out, _ := args.Get(0).([]model.SlotVariantResponse)
	return out, args.Error(1)
}

func (m *mockSlots) CreateType(ctx context.Context, req model.CreateSlotTypeRequest) (*model.PromptSlotType, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*model.PromptSlotType)
	return out, args.Error(1)
}

func setupSlotRouter(slots *mockSlots) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPromptHandler(nil, nil, slots)
	r.POST("/api/prompt-slot-types", h.CreateSlotType)
	r.GET("/api/prompt-slot-types/:id/variants", h.ListSlotVariants)
	r.GET("/api/prompt-slot-variants", h.ListSlotVariants)
	return r
}

func setupRouter(prompts *mockPrompts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPromptHandler(prompts, nil, nil)
	r.GET("/api/prompts/active", h.ListActive)
	r.GET("/api/prompts/search", h.Search)
	r.GET("/api/prompts/:id", h.Get)
	return r
}

func TestListActive(t *testing.T) {
	prompts := new(mockPrompts)
	prompts.On("ListActive", mock.Anything).Return([]model.PromptResponse{{ID: 1, Title: "Fox", Active: true}}, nil)

	w := httptest.NewRecorder()
	setupRouter(prompts).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompts/active", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []model.PromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Fox", body[0].Title)
	prompts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSearch_PassesTitleQuery(t *testing.T) {
	prompts := new(mockPrompts)
	prompts.On("SearchByTitle", mock.Anything, "sun set").Return([]model.PromptResponse{}, nil)

	w := httptest.NewRecorder()
	setupRouter(prompts).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompts/search?title=sun+set", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	prompts.AssertExpectations(t)
}

func TestGet_MissingIs404(t *testing.T) {
	prompts := new(mockPrompts)
	prompts.On("Get", mock.Anything, int64(12)).Return(nil, model.ErrPromptNotFound(12))

	w := httptest.NewRecorder()
	setupRouter(prompts).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompts/12", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Prompt not found with id: 12")
}

func TestListSlotVariants_ScopedByPathOrQuery(t *testing.T) {
	slots := new(mockSlots)
	two := int64(2)
	slots.On("ListVariants", mock.Anything, &two).Return([]model.SlotVariantResponse{{ID: 5, SlotTypeID: 2}}, nil)
	slots.On("ListVariants", mock.Anything, (*int64)(nil)).Return([]model.SlotVariantResponse{}, nil)

	r := setupSlotRouter(slots)
	for _, url := range []string{"/api/prompt-slot-types/2/variants", "/api/prompt-slot-variants?slotTypeId=2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		require.Equal(t, http.StatusOK, w.Code, url)
		assert.Contains(t, w.Body.String(), `"promptSlotTypeId":2`, url)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompt-slot-variants", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListSlotVariants_BadPathIDIs400(t *testing.T) {
	slots := new(mockSlots)

	w := httptest.NewRecorder()
	setupSlotRouter(slots).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompt-slot-types/x/variants", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	slots.AssertNotCalled(t, "ListVariants", mock.Anything, mock.Anything)
}

func TestCreateSlotType_TakenPositionIs409(t *testing.T) {
	slots := new(mockSlots)
	slots.On("CreateType", mock.Anything, model.CreateSlotTypeRequest{Name: "Style", Position: 1}).
		Return(nil, model.ErrSlotTypePositionTaken(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prompt-slot-types", strings.NewReader(`{"name":"Style","position":1}`))
	req.Header.Set("Content-Type", "application/json")
	setupSlotRouter(slots).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PromptSlotType already exists with position: 1")
}
