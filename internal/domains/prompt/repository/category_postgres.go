package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/pkg/cache"
)

const (
	categoryCacheKeyPrefix = "prompt_category:"
	categoryCacheTTL       = 15 * time.Minute
)

const categorySelect = `
	SELECT c.id, c.name,
	       (SELECT COUNT(*) FROM prompts p WHERE p.category_id = c.id),
	       (SELECT COUNT(*) FROM prompt_subcategories s WHERE s.prompt_category_id = c.id),
	       c.created_at, c.updated_at
	FROM prompt_categories c`

type categoryRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewCategoryRepository(pool *pgxpool.Pool, cache cache.Cache) CategoryRepository {
	return &categoryRepository{pool: pool, cache: cache}
}

func scanCategory(row pgx.Row) (*model.PromptCategory, error) {
	var c model.PromptCategory
	if err := row.Scan(&c.ID, &c.Name, &c.PromptsCount, &c.SubcategoriesCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO prompt_categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&id)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCategoryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to create prompt category: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID is cached; the prompts count may lag by up to the cache TTL.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.PromptCategory, error) {
	key := categoryCacheKeyPrefix + strconv.FormatInt(id, 10)

	var cached model.PromptCategory
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	c, err := scanCategory(r.pool.QueryRow(ctx, categorySelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound(id)
		}
		return nil, fmt.Errorf("failed to get prompt category: %w", err)
	}

	_ = r.cache.Set(ctx, key, c, categoryCacheTTL)
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.PromptCategory, error) {
	rows, err := r.pool.Query(ctx, categorySelect+` ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt categories: %w", err)
	}
	defer rows.Close()

	categories := []model.PromptCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prompt categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.PromptCategory) (*model.PromptCategory, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE prompt_categories SET name = $2, updated_at = NOW() WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCategoryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to update prompt category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrCategoryNotFound(c.ID)
	}

	r.invalidate(ctx, c.ID)
	return r.GetByID(ctx, c.ID)
}

// Delete detaches the category's prompts (ON DELETE SET NULL) and drops its
// subcategories.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prompt_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound(id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM prompt_categories WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check prompt category name: %w", err)
	}
	return exists, nil
}

func (r *categoryRepository) invalidate(ctx context.Context, id int64) {
	_ = r.cache.Delete(ctx, categoryCacheKeyPrefix+strconv.FormatInt(id, 10))
}
