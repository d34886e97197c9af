package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/shared/apperror"
)

type mockVariantRepo struct{ mock.Mock }

func (m *mockVariantRepo) Create(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error) {
	args := m.Called(ctx, v)
	out, _ := args.Get(0).(*model.MugVariant)
	return out, args.Error(1)
}

func (m *mockVariantRepo) GetByID(ctx context.Context, id int64) (*model.MugVariant, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.MugVariant)
	return out, args.Error(1)
}

func (m *mockVariantRepo) ListByArticle(ctx context.Context, articleID int64, activeOnly bool) ([]model.MugVariant, error) {
	args := m.Called(ctx, articleID, activeOnly)
	out, _ := args.Get(0).([]model.MugVariant)
	return out, args.Error(1)
}

func (m *mockVariantRepo) Update(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error) {
	args := m.Called(ctx, v)
	out, _ := args.Get(0).(*model.MugVariant)
	return out, args.Error(1)
}

func (m *mockVariantRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestVariantCreate_FirstVariantBecomesDefault(t *testing.T) {
	articles := new(mockRepo)
	variants := new(mockVariantRepo)
	articles.On("GetByID", mock.Anything, int64(1)).Return(&model.Article{ID: 1, ArticleType: model.ArticleTypeMug}, nil)
	variants.On("ListByArticle", mock.Anything, int64(1), false).Return([]model.MugVariant{}, nil)

	var saved *model.MugVariant
	variants.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.MugVariant) }).
		Return(&model.MugVariant{ID: 5, ArticleID: 1, IsDefault: true}, nil)

	_, err := NewVariantService(variants, articles).Create(context.Background(), 1,
		model.CreateMugVariantRequest{Name: "Black inside", InsideColorCode: "#1A1A1A"})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.IsDefault)
	assert.True(t, saved.Active)
	assert.Equal(t, "#1a1a1a", saved.InsideColorCode)
	assert.Equal(t, "#ffffff", saved.OutsideColorCode)
}

func TestVariantCreate_OnlyForMugs(t *testing.T) {
	articles := new(mockRepo)
	variants := new(mockVariantRepo)
	articles.On("GetByID", mock.Anything, int64(2)).Return(&model.Article{ID: 2, ArticleType: model.ArticleTypeShirt}, nil)

	_, err := NewVariantService(variants, articles).Create(context.Background(), 2,
		model.CreateMugVariantRequest{Name: "Red"})

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	variants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVariantCreate_BadColorIsValidationError(t *testing.T) {
	_, err := NewVariantService(new(mockVariantRepo), new(mockRepo)).Create(context.Background(), 1,
		model.CreateMugVariantRequest{Name: "Red", OutsideColorCode: "red"})

	require.True(t, apperror.IsValidation(err))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "outsideColorCode")
}

func TestVariantUpdate_OtherArticlesVariantIsNotFound(t *testing.T) {
	variants := new(mockVariantRepo)
	variants.On("GetByID", mock.Anything, int64(5)).Return(&model.MugVariant{ID: 5, ArticleID: 9}, nil)

	name := "Blue"
	_, err := NewVariantService(variants, new(mockRepo)).Update(context.Background(), 1, 5,
		model.UpdateMugVariantRequest{Name: &name})

	assert.True(t, apperror.IsNotFound(err))
	variants.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVariantUpdate_PatchesProvidedFields(t *testing.T) {
	variants := new(mockVariantRepo)
	existing := &model.MugVariant{ID: 5, ArticleID: 1, Name: "Black", InsideColorCode: "#000000", Active: true}
	variants.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	variants.On("Update", mock.Anything, existing).Return(existing, nil)

	isDefault := true
	got, err := NewVariantService(variants, new(mockRepo)).Update(context.Background(), 1, 5,
		model.UpdateMugVariantRequest{IsDefault: &isDefault})

	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, "Black", got.Name)
	assert.Equal(t, "#000000", got.InsideColorCode)
}
