package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/domains/user/model"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(*model.User)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.User)
	return out, args.Error(1)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*model.User)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter model.ListFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]model.User)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(*model.User)
	return out, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func validCreate() model.CreateUserRequest {
	return model.CreateUserRequest{
		Username: "jdoe",
		Email:    "John@Example.com ",
		Password: "secret-password",
	}
}

func TestCreate_DuplicateEmailPersistsNothing(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ExistsByEmail", mock.Anything, "john@example.com").Return(true, nil)

	_, err := NewUserService(repo).Create(context.Background(), validCreate())

	require.Error(t, err)
	assert.True(t, apperror.IsAlreadyExists(err))
	assert.Equal(t, "User already exists with email: john@example.com", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ExistsByEmail", mock.Anything, "john@example.com").Return(false, nil)
	repo.On("ExistsByUsername", mock.Anything, "jdoe").Return(true, nil)

	_, err := NewUserService(repo).Create(context.Background(), validCreate())

	assert.True(t, apperror.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("ExistsByUsername", mock.Anything, mock.Anything).Return(false, nil)

	var saved *model.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.User) }).
		Return(&model.User{ID: 3, Username: "jdoe", Email: "john@example.com", Roles: []string{"USER"}}, nil)

	resp, err := NewUserService(repo).Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, []string{"USER"}, saved.Roles)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secret-password")))
}

func TestCreate_InvalidEmail(t *testing.T) {
	req := validCreate()
	req.Email = "not-an-email"

	_, err := NewUserService(new(mockRepo)).Create(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "email")
}

func TestUpdate_NilFieldsKeepStoredValues(t *testing.T) {
	repo := new(mockRepo)
	first := "John"
	existing := &model.User{ID: 1, Username: "jdoe", Email: "john@example.com", FirstName: &first, Roles: []string{"USER"}}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	last := "Doe"
	resp, err := NewUserService(repo).Update(context.Background(), 1, model.UpdateUserRequest{LastName: &last})

	require.NoError(t, err)
	assert.Equal(t, "jdoe", resp.Username)
	assert.Equal(t, "john@example.com", resp.Email)
	assert.Equal(t, "John", *resp.FirstName)
	assert.Equal(t, "Doe", *resp.LastName)
	assert.Empty(t, existing.PasswordHash)
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestUpdate_ChangedEmailMustBeUnique(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "jdoe", Email: "john@example.com"}, nil)
	repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	email := "taken@example.com"
	_, err := NewUserService(repo).Update(context.Background(), 1, model.UpdateUserRequest{Email: &email})

	assert.True(t, apperror.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_BlankClearsOptionalField(t *testing.T) {
	repo := new(mockRepo)
	phone := "+49 123"
	existing := &model.User{ID: 1, Username: "jdoe", Email: "john@example.com", PhoneNumber: &phone}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	blank := " "
	resp, err := NewUserService(repo).Update(context.Background(), 1, model.UpdateUserRequest{PhoneNumber: &blank})

	require.NoError(t, err)
	assert.Nil(t, resp.PhoneNumber)
}

func TestGet_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, model.ErrUserNotFound(7))

	_, err := NewUserService(repo).Get(context.Background(), 7)

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "User not found with id: 7", err.Error())
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, model.ErrUserNotFound(7))

	err := NewUserService(repo).Delete(context.Background(), 7)

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestList_TranslatesPageToOffset(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, model.ListFilter{Search: "doe", Limit: 10, Offset: 20}).
		Return([]model.User{{ID: 21}}, int64(21), nil)

	page, err := NewUserService(repo).List(context.Background(), " doe ", 2, 10)

	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}
