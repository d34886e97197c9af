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

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.ArticleCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.ArticleCategory, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.ArticleCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.ArticleCategory, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.ArticleCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.ArticleCategory)
	return out, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type mockSubcategoryRepo struct{ mock.Mock }

func (m *mockSubcategoryRepo) Create(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error) {
	args := m.Called(ctx, sc)
	out, _ := args.Get(0).(*model.ArticleSubcategory)
	return out, args.Error(1)
}

func (m *mockSubcategoryRepo) GetByID(ctx context.Context, id int64) (*model.ArticleSubcategory, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.ArticleSubcategory)
	return out, args.Error(1)
}

func (m *mockSubcategoryRepo) List(ctx context.Context, categoryID *int64) ([]model.ArticleSubcategory, error) {
	args := m.Called(ctx, categoryID)
	out, _ := args.Get(0).([]model.ArticleSubcategory)
	return out, args.Error(1)
}

func (m *mockSubcategoryRepo) Update(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error) {
	args := m.Called(ctx, sc)
	out, _ := args.Get(0).(*model.ArticleSubcategory)
	return out, args.Error(1)
}

func (m *mockSubcategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSubcategoryRepo) ExistsByName(ctx context.Context, categoryID int64, name string) (bool, error) {
	args := m.Called(ctx, categoryID, name)
	return args.Bool(0), args.Error(1)
}

func TestCategoryCreate_DuplicateNameIsAlreadyExists(t *testing.T) {
	cats := new(mockCategoryRepo)
	cats.On("ExistsByName", mock.Anything, "Mugs").Return(true, nil)

	_, err := NewCategoryService(cats, nil).Create(context.Background(), model.CreateCategoryRequest{Name: " Mugs "})

	assert.True(t, apperror.IsAlreadyExists(err))
	cats.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryDelete_WithArticlesIsConflict(t *testing.T) {
	cats := new(mockCategoryRepo)
	cats.On("GetByID", mock.Anything, int64(2)).Return(&model.ArticleCategory{ID: 2, ArticlesCount: 3}, nil)

	err := NewCategoryService(cats, nil).Delete(context.Background(), 2)

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	cats.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateSubcategory_UnknownCategoryIsNotFound(t *testing.T) {
	cats := new(mockCategoryRepo)
	subs := new(mockSubcategoryRepo)
	cats.On("GetByID", mock.Anything, int64(8)).Return(nil, model.ErrCategoryNotFound(8))

	_, err := NewCategoryService(cats, subs).CreateSubcategory(context.Background(),
		model.CreateSubcategoryRequest{CategoryID: 8, Name: "Espresso"})

	assert.True(t, apperror.IsNotFound(err))
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSubcategory_NameUniquePerCategory(t *testing.T) {
	cats := new(mockCategoryRepo)
	subs := new(mockSubcategoryRepo)
	cats.On("GetByID", mock.Anything, int64(1)).Return(&model.ArticleCategory{ID: 1}, nil)
	subs.On("ExistsByName", mock.Anything, int64(1), "Espresso").Return(false, nil)
	subs.On("Create", mock.Anything, mock.MatchedBy(func(sc *model.ArticleSubcategory) bool {
		return sc.CategoryID == 1 && sc.Name == "Espresso"
	})).Return(&model.ArticleSubcategory{ID: 4, CategoryID: 1, Name: "Espresso"}, nil)

	got, err := NewCategoryService(cats, subs).CreateSubcategory(context.Background(),
		model.CreateSubcategoryRequest{CategoryID: 1, Name: "Espresso "})

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
}

func TestUpdateSubcategory_MoveWithArticlesIsConflict(t *testing.T) {
	subs := new(mockSubcategoryRepo)
	subs.On("GetByID", mock.Anything, int64(4)).
		Return(&model.ArticleSubcategory{ID: 4, CategoryID: 1, Name: "Espresso", ArticlesCount: 2}, nil)

	other := int64(2)
	_, err := NewCategoryService(new(mockCategoryRepo), subs).UpdateSubcategory(context.Background(), 4,
		model.UpdateSubcategoryRequest{CategoryID: &other})

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	subs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArticleCreate_SubcategoryMustBelongToCategory(t *testing.T) {
	repo := new(mockRepo)
	cats := new(mockCategoryRepo)
	subs := new(mockSubcategoryRepo)
	cats.On("GetByID", mock.Anything, int64(1)).Return(&model.ArticleCategory{ID: 1}, nil)
	subs.On("GetByID", mock.Anything, int64(9)).Return(&model.ArticleSubcategory{ID: 9, CategoryID: 2}, nil)

	req := validCreate()
	catID, subID := int64(1), int64(9)
	req.CategoryID, req.SubcategoryID = &catID, &subID

	_, err := NewArticleService(repo, new(mockSuppliers), new(mockVats), cats, subs).Create(context.Background(), req)

	require.True(t, apperror.IsValidation(err))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "subcategoryId")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestArticleCreate_SubcategoryImpliesCategory(t *testing.T) {
	repo := new(mockRepo)
	subs := new(mockSubcategoryRepo)
	subs.On("GetByID", mock.Anything, int64(9)).Return(&model.ArticleSubcategory{ID: 9, CategoryID: 2}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
		return a.CategoryID != nil && *a.CategoryID == 2 && *a.SubcategoryID == 9
	})).Return(&model.Article{ID: 1}, nil)

	req := validCreate()
	subID := int64(9)
	req.SubcategoryID = &subID

	_, err := NewArticleService(repo, new(mockSuppliers), new(mockVats), new(mockCategoryRepo), subs).
		Create(context.Background(), req)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestArticleUpdate_NewCategoryDropsSubcategory(t *testing.T) {
	repo := new(mockRepo)
	cats := new(mockCategoryRepo)
	oldCat, oldSub := int64(1), int64(9)
	existing := &model.Article{ID: 3, Name: "Mug", ArticleType: model.ArticleTypeMug, CategoryID: &oldCat, SubcategoryID: &oldSub}
	repo.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	cats.On("GetByID", mock.Anything, int64(2)).Return(&model.ArticleCategory{ID: 2}, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	newCat := int64(2)
	got, err := NewArticleService(repo, new(mockSuppliers), new(mockVats), cats, new(mockSubcategoryRepo)).
		Update(context.Background(), 3, model.UpdateArticleRequest{CategoryID: &newCat})

	require.NoError(t, err)
	assert.Equal(t, int64(2), *got.CategoryID)
	assert.Nil(t, got.SubcategoryID)
}
