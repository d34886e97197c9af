package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/shared/apperror"
)

type mockPromptRepo struct{ mock.Mock }

func (m *mockPromptRepo) Create(ctx context.Context, p *model.Prompt) (*model.Prompt, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*model.Prompt)
	return out, args.Error(1)
}

func (m *mockPromptRepo) GetByID(ctx context.Context, id int64) (*model.Prompt, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Prompt)
	return out, args.Error(1)
}

func (m *mockPromptRepo) List(ctx context.Context, activeOnly bool) ([]model.Prompt, error) {
	args := m.Called(ctx, activeOnly)
	out, _ := args.Get(0).([]model.Prompt)
	return out, args.Error(1)
}

func (m *mockPromptRepo) SearchByTitle(ctx context.Context, title string) ([]model.Prompt, error) {
	args := m.Called(ctx, title)
	out, _ := args.Get(0).([]model.Prompt)
	return out, args.Error(1)
}

func (m *mockPromptRepo) Update(ctx context.Context, p *model.Prompt) (*model.Prompt, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*model.Prompt)
	return out, args.Error(1)
}

func (m *mockPromptRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.PromptCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.PromptCategory, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.PromptCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.PromptCategory, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.PromptCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.PromptCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type mockObjects struct{ mock.Mock }

func (m *mockObjects) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newPromptService(repo *mockPromptRepo, cats *mockCategoryRepo, objects *mockObjects) PromptService {
	return NewPromptService(repo, cats, nil, nil, objects, "http://cdn.local/shop/")
}

func TestSearchByTitle_TrimsAndDelegates(t *testing.T) {
	repo := new(mockPromptRepo)
	repo.On("SearchByTitle", mock.Anything, "SUNSET").Return([]model.Prompt{
		{ID: 1, Title: "Golden sunset over the sea"},
		{ID: 2, Title: "Sunset cat"},
	}, nil)

	got, err := newPromptService(repo, nil, nil).SearchByTitle(context.Background(), "  SUNSET ")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Sunset cat", got[1].Title)
}

func TestSearchByTitle_BlankListsAll(t *testing.T) {
	repo := new(mockPromptRepo)
	repo.On("List", mock.Anything, false).Return([]model.Prompt{{ID: 1}}, nil)

	got, err := newPromptService(repo, nil, nil).SearchByTitle(context.Background(), " ")

	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertNotCalled(t, "SearchByTitle", mock.Anything, mock.Anything)
}

func TestCreate_UnknownCategoryIsNotFound(t *testing.T) {
	repo := new(mockPromptRepo)
	cats := new(mockCategoryRepo)
	cats.On("GetByID", mock.Anything, int64(9)).Return(nil, model.ErrCategoryNotFound(9))

	catID := int64(9)
	_, err := newPromptService(repo, cats, nil).Create(context.Background(),
		model.CreatePromptRequest{Title: "Cat", CategoryID: &catID})

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DefaultsActiveAndBuildsImageURL(t *testing.T) {
	repo := new(mockPromptRepo)
	file := "abc.png"
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Prompt) bool { return p.Active })).
		Return(&model.Prompt{ID: 5, Title: "Cat", Active: true, ExampleImageFilename: &file}, nil)

	resp, err := newPromptService(repo, nil, nil).Create(context.Background(),
		model.CreatePromptRequest{Title: " Cat ", ExampleImageFilename: &file})

	require.NoError(t, err)
	require.NotNil(t, resp.ExampleImageURL)
	assert.Equal(t, "http://cdn.local/shop/images/abc.png", *resp.ExampleImageURL)
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	repo := new(mockPromptRepo)
	text := "a watercolor fox"
	existing := &model.Prompt{ID: 1, Title: "Fox", PromptText: &text, Active: true}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	inactive := false
	resp, err := newPromptService(repo, nil, nil).Update(context.Background(), 1,
		model.UpdatePromptRequest{Active: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "Fox", resp.Title)
	assert.Equal(t, "a watercolor fox", *resp.PromptText)
	assert.False(t, resp.Active)
}

func TestUpdate_ReplacedImageIsRemoved(t *testing.T) {
	repo := new(mockPromptRepo)
	objects := new(mockObjects)
	old := "old.png"
	existing := &model.Prompt{ID: 1, Title: "Fox", ExampleImageFilename: &old}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)
	objects.On("Delete", mock.Anything, "images/old.png").Return(errors.New("storage down"))

	newFile := "new.png"
	resp, err := newPromptService(repo, nil, objects).Update(context.Background(), 1,
		model.UpdatePromptRequest{ExampleImageFilename: &newFile})

	require.NoError(t, err, "image cleanup failures are not fatal")
	assert.Equal(t, "new.png", *resp.ExampleImageFilename)
	objects.AssertExpectations(t)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	repo := new(mockPromptRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, model.ErrPromptNotFound(3))

	err := newPromptService(repo, nil, nil).Delete(context.Background(), 3)

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("ExistsByName", mock.Anything, "Animals").Return(true, nil)

	_, err := NewCategoryService(repo, nil).Create(context.Background(), model.CreateCategoryRequest{Name: "Animals"})

	assert.True(t, apperror.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
