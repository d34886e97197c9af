package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/cache"
)

const (
	imageCacheKeyPrefix = "image:"
	cacheTTL            = 30 * time.Minute
)

const imageColumns = `
	id, filename, original_filename, content_type, size_bytes, width, height, image_type,
	user_id, alt_text, storage_key, thumbnail_key, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func cacheKey(id int64) string {
	return imageCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func scanImage(row pgx.Row) (*model.Image, error) {
	var img model.Image
	err := row.Scan(
		&img.ID, &img.Filename, &img.OriginalFilename, &img.ContentType, &img.Size, &img.Width, &img.Height,
		&img.ImageType, &img.UserID, &img.AltText, &img.StorageKey, &img.ThumbnailKey,
		&img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *postgresRepository) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	query := `
		INSERT INTO images (filename, original_filename, content_type, size_bytes, width, height,
		                    image_type, user_id, alt_text, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + imageColumns

	created, err := scanImage(r.pool.QueryRow(ctx, query,
		img.Filename, img.OriginalFilename, img.ContentType, img.Size, img.Width, img.Height,
		img.ImageType, img.UserID, img.AltText, img.StorageKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	var cached model.Image
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	img, err := scanImage(r.pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound(id)
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey(id), img, cacheTTL)
	return img, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Image, int64, error) {
	var where utils.Where
	if filter.ImageType != "" {
		where.Add("image_type = ?", filter.ImageType)
	}
	if filter.UserID != nil {
		where.Add("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM images%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		imageColumns, where.SQL(), where.Next(), where.Next()+1)
	args := append(where.Args(), filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []model.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating images: %w", err)
	}
	return images, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, img *model.Image) (*model.Image, error) {
	updated, err := scanImage(r.pool.QueryRow(ctx, `
		UPDATE images SET alt_text = $2, image_type = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+imageColumns, img.ID, img.AltText, img.ImageType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound(img.ID)
		}
		return nil, fmt.Errorf("failed to update image: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKey(img.ID))
	return updated, nil
}

func (r *postgresRepository) SetThumbnail(ctx context.Context, id int64, key string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE images SET thumbnail_key = $2, updated_at = NOW() WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("failed to set thumbnail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImageNotFound(id)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImageNotFound(id)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return nil
}

func (r *postgresRepository) EnsureExists(ctx context.Context, id int64) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM images WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check image: %w", err)
	}
	if !exists {
		return model.ErrImageNotFound(id)
	}
	return nil
}
