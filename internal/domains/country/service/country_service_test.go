package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/country/model"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, c *model.Country) (*model.Country, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.Country)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Country)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Country)
	return out, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, c *model.Country) (*model.Country, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.Country)
	return out, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ExistsByName", mock.Anything, "Germany").Return(true, nil)

	_, err := NewCountryService(repo).Create(context.Background(), model.CreateCountryRequest{Name: " Germany "})

	assert.True(t, apperror.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_BlankNameIsValidationError(t *testing.T) {
	_, err := NewCountryService(new(mockRepo)).Create(context.Background(), model.CreateCountryRequest{Name: "  "})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdate_SameNameSkipsUniquenessCheck(t *testing.T) {
	repo := new(mockRepo)
	existing := &model.Country{ID: 1, Name: "Austria"}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	resp, err := NewCountryService(repo).Update(context.Background(), 1, model.UpdateCountryRequest{Name: strPtr("austria")})

	require.NoError(t, err)
	assert.Equal(t, "austria", resp.Name)
	repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, model.ErrCountryNotFound(5))

	err := NewCountryService(repo).Delete(context.Background(), 5)

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func strPtr(s string) *string { return &s }
