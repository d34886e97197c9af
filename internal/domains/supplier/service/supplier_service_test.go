package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	countrymodel "shop-backend/internal/domains/country/model"
	"shop-backend/internal/domains/supplier/model"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(*model.Supplier)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Supplier)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Supplier)
	return out, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(*model.Supplier)
	return out, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockCountries struct{ mock.Mock }

func (m *mockCountries) Create(ctx context.Context, c *countrymodel.Country) (*countrymodel.Country, error) {
	panic("not used")
}

func (m *mockCountries) GetByID(ctx context.Context, id int64) (*countrymodel.Country, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*countrymodel.Country)
	return out, args.Error(1)
}

func (m *mockCountries) List(ctx context.Context) ([]countrymodel.Country, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]countrymodel.Country)
	return out, args.Error(1)
}

func (m *mockCountries) Update(ctx context.Context, c *countrymodel.Country) (*countrymodel.Country, error) {
	panic("not used")
}

func (m *mockCountries) Delete(ctx context.Context, id int64) error {
	panic("not used")
}

func (m *mockCountries) ExistsByName(ctx context.Context, name string) (bool, error) {
	panic("not used")
}

func str(s string) *string { return &s }
func id(v int64) *int64    { return &v }

func TestCreate_UnknownCountryIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	countries := new(mockCountries)
	countries.On("GetByID", mock.Anything, int64(99)).Return(nil, countrymodel.ErrCountryNotFound(99))

	_, err := NewSupplierService(repo, countries).Create(context.Background(),
		model.SupplierRequest{CountryID: id(99)})

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Country not found with id: 99", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_InvalidEmailIsValidationError(t *testing.T) {
	_, err := NewSupplierService(new(mockRepo), new(mockCountries)).Create(context.Background(),
		model.SupplierRequest{Email: str("nope")})

	assert.True(t, apperror.IsValidation(err))
}

func TestCreate_DuplicateNameIsConflict(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ExistsByName", mock.Anything, "Acme", int64(0)).Return(true, nil)

	_, err := NewSupplierService(repo, new(mockCountries)).Create(context.Background(),
		model.SupplierRequest{Name: str(" Acme ")})

	assert.True(t, apperror.IsAlreadyExists(err))
}

func TestCreate_EmbedsCountry(t *testing.T) {
	repo := new(mockRepo)
	countries := new(mockCountries)
	country := &countrymodel.Country{ID: 1, Name: "Germany"}
	countries.On("GetByID", mock.Anything, int64(1)).Return(country, nil)
	repo.On("ExistsByName", mock.Anything, "Acme", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(&model.Supplier{ID: 4, Name: str("Acme"), CountryID: id(1)}, nil)

	resp, err := NewSupplierService(repo, countries).Create(context.Background(),
		model.SupplierRequest{Name: str("Acme"), CountryID: id(1)})

	require.NoError(t, err)
	require.NotNil(t, resp.Country)
	assert.Equal(t, "Germany", resp.Country.Name)
}

func TestUpdate_NilKeepsBlankClears(t *testing.T) {
	repo := new(mockRepo)
	existing := &model.Supplier{ID: 2, Name: str("Acme"), City: str("Berlin"), Website: str("acme.example")}
	repo.On("GetByID", mock.Anything, int64(2)).Return(existing, nil)
	repo.On("ExistsByName", mock.Anything, "Acme", int64(2)).Return(false, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	resp, err := NewSupplierService(repo, new(mockCountries)).Update(context.Background(), 2,
		model.SupplierRequest{City: str("Hamburg"), Website: str("  ")})

	require.NoError(t, err)
	assert.Equal(t, "Acme", *resp.Name)
	assert.Equal(t, "Hamburg", *resp.City)
	assert.Nil(t, resp.Website)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(8)).Return(nil, model.ErrSupplierNotFound(8))

	err := NewSupplierService(repo, new(mockCountries)).Delete(context.Background(), 8)

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
