package service

import (
	"context"
	"errors"
	"path"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/domains/image/repository"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

const pngContentType = "image/png"

type imageService struct {
	repo      repository.RepositoryInterface
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     queue.Enqueuer
	uploaded  *prometheus.CounterVec
}

func NewImageService(
	repo repository.RepositoryInterface,
	objects storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks queue.Enqueuer,
	uploaded *prometheus.CounterVec,
) ServiceInterface {
	return &imageService{
		repo:      repo,
		storage:   objects,
		processor: processor,
		tasks:     tasks,
		uploaded:  uploaded,
	}
}

func (s *imageService) Upload(ctx context.Context, userID *int64, originalFilename string, data []byte, req model.UploadRequest) (*model.ImageResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperror.FieldError("file", "cannot be blank")
	}

	if _, err := s.processor.ValidateImage(data); err != nil {
		return nil, model.ErrInvalidImage(err)
	}
	processed, err := s.processor.ToPNG(data, req.Crop)
	if err != nil {
		if errors.Is(err, storage.ErrCropOutOfBounds) || errors.Is(err, storage.ErrUnsupportedFormat) {
			return nil, model.ErrInvalidImage(err)
		}
		return nil, err
	}

	filename := uuid.NewString() + ".png"
	key := storage.ImageKey(filename)
	if _, err := s.storage.Upload(ctx, key, processed.Data, pngContentType); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Image{
		Filename:         filename,
		OriginalFilename: path.Base(originalFilename),
		ContentType:      pngContentType,
		Size:             int64(len(processed.Data)),
		Width:            processed.Width,
		Height:           processed.Height,
		ImageType:        req.ImageType,
		UserID:           userID,
		AltText:          req.AltText,
		StorageKey:       key,
	})
	if err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	if s.uploaded != nil {
		s.uploaded.WithLabelValues(string(created.ImageType)).Inc()
	}
	if s.tasks != nil {
		err := s.tasks.Enqueue(ctx, shared.TypeProcessImage, shared.ImageTaskPayload{ImageID: created.ID},
			asynq.Queue(shared.QueueLow), asynq.MaxRetry(3))
		if err != nil {
			log.Warn().Err(err).Int64("image_id", created.ID).Msg("failed to enqueue thumbnail generation")
		}
	}

	log.Info().Int64("image_id", created.ID).Str("type", string(created.ImageType)).Int64("size", created.Size).Msg("image uploaded")
	resp := created.ToResponse()
	return &resp, nil
}

func (s *imageService) List(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.ImageResponse], error) {
	filter.Limit = size
	filter.Offset = page * size

	images, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return response.Page[model.ImageResponse]{}, err
	}

	out := make([]model.ImageResponse, len(images))
	for i := range images {
		out[i] = images[i].ToResponse()
	}
	return response.NewPage(out, page, size, total), nil
}

func (s *imageService) Get(ctx context.Context, id int64) (*model.ImageResponse, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := img.ToResponse()
	return &resp, nil
}

func (s *imageService) Content(ctx context.Context, id int64, thumbnail bool) ([]byte, string, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	key := img.StorageKey
	if thumbnail {
		if img.ThumbnailKey == nil {
			return nil, "", model.ErrThumbnailMissing(id)
		}
		key = *img.ThumbnailKey
	}

	data, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return data, img.ContentType, nil
}

func (s *imageService) Update(ctx context.Context, id int64, req model.UpdateImageRequest) (*model.ImageResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AltText != nil {
		existing.AltText = utils.TrimPtr(req.AltText)
	}
	utils.Patch(&existing.ImageType, req.ImageType)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *imageService) Delete(ctx context.Context, id int64) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeObject(ctx, img.StorageKey)
	if img.ThumbnailKey != nil {
		s.removeObject(ctx, *img.ThumbnailKey)
	}
	return nil
}

func (s *imageService) GenerateThumbnail(ctx context.Context, id int64) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img.ThumbnailKey != nil {
		return nil
	}

	data, err := s.storage.Download(ctx, img.StorageKey)
	if err != nil {
		return err
	}
	thumb, err := s.processor.Thumbnail(data)
	if err != nil {
		return err
	}

	key := storage.ThumbnailKey(img.Filename)
	if _, err := s.storage.Upload(ctx, key, thumb, pngContentType); err != nil {
		return err
	}
	if err := s.repo.SetThumbnail(ctx, id, key); err != nil {
		s.removeObject(ctx, key)
		return err
	}

	log.Info().Int64("image_id", id).Str("key", key).Msg("thumbnail generated")
	return nil
}

func (s *imageService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove stored object")
	}
}
