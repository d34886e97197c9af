package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	args := m.Called(ctx, img)
	out, _ := args.Get(0).(*model.Image)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Image)
	return out, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter model.ListFilter) ([]model.Image, int64, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]model.Image)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, img *model.Image) (*model.Image, error) {
	args := m.Called(ctx, img)
	out, _ := args.Get(0).(*model.Image)
	return out, args.Error(1)
}

func (m *mockRepo) SetThumbnail(ctx context.Context, id int64, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) EnsureExists(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockEnqueuer struct{ mock.Mock }

func (m *mockEnqueuer) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	return m.Called(ctx, taskType, payload).Error(0)
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newService(repo *mockRepo, objects *mockStorage, tasks *mockEnqueuer) ServiceInterface {
	return NewImageService(repo, objects, storage.NewImageProcessor(1<<20, 32), tasks, nil)
}

func TestUpload_CropsStoresAndEnqueues(t *testing.T) {
	repo, objects, tasks := new(mockRepo), new(mockStorage), new(mockEnqueuer)
	objects.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("images/") && key[:7] == "images/"
	}), mock.Anything, "image/png").Return("http://minio/x", nil)

	var saved *model.Image
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Image")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Image) }).
		Return(&model.Image{ID: 12, ImageType: model.ImageTypePublic}, nil)
	tasks.On("Enqueue", mock.Anything, shared.TypeProcessImage, shared.ImageTaskPayload{ImageID: 12}).Return(nil)

	resp, err := newService(repo, objects, tasks).Upload(context.Background(), nil, "../photo.png", makePNG(t, 40, 30),
		model.UploadRequest{ImageType: "public", Crop: &storage.CropArea{X: 5, Y: 5, Width: 20, Height: 10}})

	require.NoError(t, err)
	assert.Equal(t, "/api/images/12/content", resp.URL)
	require.NotNil(t, saved)
	assert.Equal(t, 20, saved.Width)
	assert.Equal(t, 10, saved.Height)
	assert.Equal(t, "photo.png", saved.OriginalFilename)
	assert.Equal(t, model.ImageTypePublic, saved.ImageType)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, saved.Filename)
	assert.Equal(t, "images/"+saved.Filename, saved.StorageKey)
	tasks.AssertExpectations(t)
}

func TestUpload_RejectsGarbage(t *testing.T) {
	repo, objects := new(mockRepo), new(mockStorage)

	_, err := newService(repo, objects, new(mockEnqueuer)).Upload(context.Background(), nil, "x.txt", []byte("not an image"),
		model.UploadRequest{ImageType: model.ImageTypePublic})

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_CropOutsideImageIsBadRequest(t *testing.T) {
	_, err := newService(new(mockRepo), new(mockStorage), new(mockEnqueuer)).Upload(context.Background(), nil, "a.png",
		makePNG(t, 10, 10), model.UploadRequest{ImageType: model.ImageTypePublic, Crop: &storage.CropArea{Width: 50, Height: 50}})

	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestUpload_UnknownTypeIsValidationError(t *testing.T) {
	_, err := newService(new(mockRepo), new(mockStorage), new(mockEnqueuer)).Upload(context.Background(), nil, "a.png",
		makePNG(t, 10, 10), model.UploadRequest{ImageType: "selfie"})

	assert.True(t, apperror.IsValidation(err))
}

func TestUpload_RowFailureRemovesObject(t *testing.T) {
	repo, objects := new(mockRepo), new(mockStorage)
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	objects.On("Delete", mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := newService(repo, objects, new(mockEnqueuer)).Upload(context.Background(), nil, "a.png",
		makePNG(t, 10, 10), model.UploadRequest{ImageType: model.ImageTypePrivate})

	assert.ErrorIs(t, err, assert.AnError)
	objects.AssertNumberOfCalls(t, "Delete", 1)
}

func TestContent_MissingThumbnailIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&model.Image{ID: 4, StorageKey: "images/a.png"}, nil)

	_, _, err := newService(repo, new(mockStorage), new(mockEnqueuer)).Content(context.Background(), 4, true)

	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_NilFieldsKeepValues(t *testing.T) {
	repo := new(mockRepo)
	alt := "A mug"
	existing := &model.Image{ID: 4, ImageType: model.ImageTypePublic, AltText: &alt}
	repo.On("GetByID", mock.Anything, int64(4)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(existing, nil)

	private := model.ImageType("private")
	resp, err := newService(repo, new(mockStorage), new(mockEnqueuer)).Update(context.Background(), 4,
		model.UpdateImageRequest{ImageType: &private})

	require.NoError(t, err)
	assert.Equal(t, model.ImageTypePrivate, resp.ImageType)
	assert.Equal(t, "A mug", *resp.AltText)
}

func TestDelete_RemovesObjectsBestEffort(t *testing.T) {
	repo, objects := new(mockRepo), new(mockStorage)
	thumb := "thumbnails/a.png"
	repo.On("GetByID", mock.Anything, int64(4)).Return(&model.Image{ID: 4, StorageKey: "images/a.png", ThumbnailKey: &thumb}, nil)
	repo.On("Delete", mock.Anything, int64(4)).Return(nil)
	objects.On("Delete", mock.Anything, "images/a.png").Return(assert.AnError)
	objects.On("Delete", mock.Anything, thumb).Return(nil)

	err := newService(repo, objects, new(mockEnqueuer)).Delete(context.Background(), 4)

	require.NoError(t, err)
	objects.AssertExpectations(t)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(nil, model.ErrImageNotFound(4))

	err := newService(repo, new(mockStorage), new(mockEnqueuer)).Delete(context.Background(), 4)

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGenerateThumbnail(t *testing.T) {
	repo, objects := new(mockRepo), new(mockStorage)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&model.Image{ID: 4, Filename: "a.png", StorageKey: "images/a.png"}, nil)
	objects.On("Download", mock.Anything, "images/a.png").Return(makePNG(t, 100, 50), nil)
	objects.On("Upload", mock.Anything, "thumbnails/a.png", mock.Anything, "image/png").Return("", nil)
	repo.On("SetThumbnail", mock.Anything, int64(4), "thumbnails/a.png").Return(nil)

	err := newService(repo, objects, new(mockEnqueuer)).GenerateThumbnail(context.Background(), 4)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
