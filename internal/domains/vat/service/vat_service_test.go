package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, v *model.Vat) (*model.Vat, error) {
	args := m.Called(ctx, v)
	out, _ := args.Get(0).(*model.Vat)
	return out, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, v *model.Vat) (*model.Vat, error) {
	args := m.Called(ctx, v)
	out, _ := args.Get(0).(*model.Vat)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Vat, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Vat)
	return out, args.Error(1)
}

func (m *mockRepo) GetDefault(ctx context.Context) (*model.Vat, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*model.Vat)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]model.Vat, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Vat)
	return out, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func TestUpdate_NilFieldsKeepValues(t *testing.T) {
	desc := "reduced rate"
	existing := &model.Vat{ID: 3, Name: "Reduced", Percent: 7, Description: &desc, IsDefault: false}

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	percent := 5
	resp, err := NewVatService(repo).Update(context.Background(), 3, model.UpdateVatRequest{Percent: &percent})

	require.NoError(t, err)
	assert.Equal(t, "Reduced", resp.Name)
	assert.Equal(t, 5, resp.Percent)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "reduced rate", *resp.Description)
	assert.False(t, resp.IsDefault)
	repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
}

func TestCreate_PercentOutOfRange(t *testing.T) {
	_, err := NewVatService(new(mockRepo)).Create(context.Background(), model.CreateVatRequest{Name: "Broken", Percent: 120})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "percent")
}

func TestUpdate_RenameToExistingConflicts(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Vat{ID: 1, Name: "Standard", Percent: 19}, nil)
	repo.On("ExistsByName", mock.Anything, "Reduced").Return(true, nil)

	name := "Reduced"
	_, err := NewVatService(repo).Update(context.Background(), 1, model.UpdateVatRequest{Name: &name})

	assert.True(t, apperror.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGet_Missing(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, model.ErrVatNotFound(99))

	_, err := NewVatService(repo).Get(context.Background(), 99)
	assert.True(t, apperror.IsNotFound(err))
}
