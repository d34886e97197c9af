package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/cache"
)

const subcategorySelect = `
	SELECT s.id, s.prompt_category_id, s.name, s.description,
	       (SELECT COUNT(*) FROM prompts p WHERE p.subcategory_id = s.id),
	       s.created_at, s.updated_at
	FROM prompt_subcategories s`

type subcategoryRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewSubcategoryRepository(pool *pgxpool.Pool, cache cache.Cache) SubcategoryRepository {
	return &subcategoryRepository{pool: pool, cache: cache}
}

func scanSubcategory(row pgx.Row) (*model.PromptSubcategory, error) {
	var s model.PromptSubcategory
	err := row.Scan(&s.ID, &s.PromptCategoryID, &s.Name, &s.Description, &s.PromptsCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subcategoryRepository) Create(ctx context.Context, s *model.PromptSubcategory) (*model.PromptSubcategory, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO prompt_subcategories (prompt_category_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		s.PromptCategoryID, s.Name, s.Description).Scan(&id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return nil, model.ErrCategoryNotFound(s.PromptCategoryID)
		}
		return nil, fmt.Errorf("failed to create prompt subcategory: %w", err)
	}
	r.invalidateParent(ctx, s.PromptCategoryID)
	return r.GetByID(ctx, id)
}

func (r *subcategoryRepository) GetByID(ctx context.Context, id int64) (*model.PromptSubcategory, error) {
	s, err := scanSubcategory(r.pool.QueryRow(ctx, subcategorySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubcategoryNotFound(id)
		}
		return nil, fmt.Errorf("failed to get prompt subcategory: %w", err)
	}
	return s, nil
}

func (r *subcategoryRepository) List(ctx context.Context, categoryID *int64) ([]model.PromptSubcategory, error) {
	var where utils.Where
	if categoryID != nil {
		where.Add("s.prompt_category_id = ?", *categoryID)
	}
	rows, err := r.pool.Query(ctx, subcategorySelect+where.SQL()+` ORDER BY s.name, s.id`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt subcategories: %w", err)
	}
	defer rows.Close()

	subcategories := []model.PromptSubcategory{}
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt subcategory: %w", err)
		}
		subcategories = append(subcategories, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prompt subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *subcategoryRepository) Update(ctx context.Context, s *model.PromptSubcategory) (*model.PromptSubcategory, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prompt_subcategories
		SET prompt_category_id = $2, name = $3, description = $4, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.PromptCategoryID, s.Name, s.Description)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return nil, model.ErrCategoryNotFound(s.PromptCategoryID)
		}
		return nil, fmt.Errorf("failed to update prompt subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrSubcategoryNotFound(s.ID)
	}

	// The old parent is unknown here, so every cached count is dropped.
	_ = r.cache.DeletePattern(ctx, categoryCacheKeyPrefix+"*")
	return r.GetByID(ctx, s.ID)
}

// Delete detaches the subcategory's prompts (ON DELETE SET NULL).
func (r *subcategoryRepository) Delete(ctx context.Context, id int64) error {
	var categoryID int64
	err := r.pool.QueryRow(ctx, `DELETE FROM prompt_subcategories WHERE id = $1 RETURNING prompt_category_id`, id).
		Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrSubcategoryNotFound(id)
		}
		return fmt.Errorf("failed to delete prompt subcategory: %w", err)
	}
	r.invalidateParent(ctx, categoryID)
	return nil
}

func (r *subcategoryRepository) invalidateParent(ctx context.Context, categoryID int64) {
	_ = r.cache.Delete(ctx, categoryCacheKeyPrefix+strconv.FormatInt(categoryID, 10))
}
