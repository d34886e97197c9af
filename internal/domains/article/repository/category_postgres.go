package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/cache"
)

const (
	categoryCacheKeyPrefix = "article_category:"
	categoryCacheTTL       = 15 * time.Minute
)

const categorySelect = `
	SELECT c.id, c.name, c.description,
	       (SELECT COUNT(*) FROM article_subcategories sc WHERE sc.category_id = c.id),
	       (SELECT COUNT(*) FROM articles a WHERE a.category_id = c.id),
	       c.created_at, c.updated_at
	FROM article_categories c`

const subcategorySelect = `
	SELECT sc.id, sc.category_id, c.name, sc.name, sc.description,
	       (SELECT COUNT(*) FROM articles a WHERE a.subcategory_id = sc.id),
	       sc.created_at, sc.updated_at
	FROM article_subcategories sc
	JOIN article_categories c ON c.id = sc.category_id`

type categoryRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewCategoryRepository(pool *pgxpool.Pool, cache cache.Cache) CategoryRepository {
	return &categoryRepository{pool: pool, cache: cache}
}

func scanCategory(row pgx.Row) (*model.ArticleCategory, error) {
	var c model.ArticleCategory
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.SubcategoriesCount, &c.ArticlesCount,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO article_categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description).Scan(&id)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCategoryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to create article category: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID is cached; the counts may lag by up to the cache TTL.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.ArticleCategory, error) {
	key := categoryCacheKeyPrefix + strconv.FormatInt(id, 10)

	var cached model.ArticleCategory
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	c, err := scanCategory(r.pool.QueryRow(ctx, categorySelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound(id)
		}
		return nil, fmt.Errorf("failed to get article category: %w", err)
	}

	_ = r.cache.Set(ctx, key, c, categoryCacheTTL)
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.ArticleCategory, error) {
	rows, err := r.pool.Query(ctx, categorySelect+` ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list article categories: %w", err)
	}
	defer rows.Close()

	categories := []model.ArticleCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.ArticleCategory) (*model.ArticleCategory, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE article_categories SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`,
		c.ID, c.Name, c.Description)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCategoryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to update article category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrCategoryNotFound(c.ID)
	}

	r.invalidate(ctx, c.ID)
	return r.GetByID(ctx, c.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM article_categories WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrCategoryInUse(id)
		}
		return fmt.Errorf("failed to delete article category: %w", err)
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
		`SELECT EXISTS(SELECT 1 FROM article_categories WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article category name: %w", err)
	}
	return exists, nil
}

// invalidate also drops cached articles, which embed the category name.
func (r *categoryRepository) invalidate(ctx context.Context, id int64) {
	_ = r.cache.Delete(ctx, categoryCacheKeyPrefix+strconv.FormatInt(id, 10))
	_ = r.cache.DeletePattern(ctx, shared.ArticleCacheKeyPrefix+"*")
}

type subcategoryRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewSubcategoryRepository(pool *pgxpool.Pool, cache cache.Cache) SubcategoryRepository {
	return &subcategoryRepository{pool: pool, cache: cache}
}

func scanSubcategory(row pgx.Row) (*model.ArticleSubcategory, error) {
	var sc model.ArticleSubcategory
	err := row.Scan(&sc.ID, &sc.CategoryID, &sc.CategoryName, &sc.Name, &sc.Description, &sc.ArticlesCount,
		&sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *subcategoryRepository) Create(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO article_subcategories (category_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		sc.CategoryID, sc.Name, sc.Description).Scan(&id)
	if err != nil {
		if err := r.mapWriteError(err, sc); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create article subcategory: %w", err)
	}
	r.invalidateParent(ctx, sc.CategoryID)
	return r.GetByID(ctx, id)
}

func (r *subcategoryRepository) GetByID(ctx context.Context, id int64) (*model.ArticleSubcategory, error) {
	sc, err := scanSubcategory(r.pool.QueryRow(ctx, subcategorySelect+` WHERE sc.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubcategoryNotFound(id)
		}
		return nil, fmt.Errorf("failed to get article subcategory: %w", err)
	}
	return sc, nil
}

func (r *subcategoryRepository) List(ctx context.Context, categoryID *int64) ([]model.ArticleSubcategory, error) {
	var where utils.Where
	if categoryID != nil {
		where.Add("sc.category_id = ?", *categoryID)
	}
	rows, err := r.pool.Query(ctx, subcategorySelect+where.SQL()+` ORDER BY c.name, sc.name`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list article subcategories: %w", err)
	}
	defer rows.Close()

	subcategories := []model.ArticleSubcategory{}
	for rows.Next() {
		sc, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article subcategory: %w", err)
		}
		subcategories = append(subcategories, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *subcategoryRepository) Update(ctx context.Context, sc *model.ArticleSubcategory) (*model.ArticleSubcategory, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE article_subcategories SET category_id = $2, name = $3, description = $4, updated_at = NOW()
		WHERE id = $1`,
		sc.ID, sc.CategoryID, sc.Name, sc.Description)
	if err != nil {
		if err := r.mapWriteError(err, sc); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update article subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrSubcategoryNotFound(sc.ID)
	}

	_ = r.cache.DeletePattern(ctx, categoryCacheKeyPrefix+"*")
	_ = r.cache.DeletePattern(ctx, shared.ArticleCacheKeyPrefix+"*")
	return r.GetByID(ctx, sc.ID)
}

func (r *subcategoryRepository) Delete(ctx context.Context, id int64) error {
	var categoryID int64
	err := r.pool.QueryRow(ctx, `DELETE FROM article_subcategories WHERE id = $1 RETURNING category_id`, id).
		Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrSubcategoryNotFound(id)
		}
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrSubcategoryInUse(id)
		}
		return fmt.Errorf("failed to delete article subcategory: %w", err)
	}
	r.invalidateParent(ctx, categoryID)
	return nil
}

func (r *subcategoryRepository) ExistsByName(ctx context.Context, categoryID int64, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM article_subcategories WHERE category_id = $1 AND LOWER(name) = LOWER($2))`,
		categoryID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article subcategory name: %w", err)
	}
	return exists, nil
}

func (r *subcategoryRepository) mapWriteError(err error, sc *model.ArticleSubcategory) error {
	if _, ok := database.UniqueViolation(err); ok {
		return model.ErrSubcategoryNameExists(sc.Name)
	}
	if _, ok := database.ForeignKeyViolation(err); ok {
		return model.ErrCategoryNotFound(sc.CategoryID)
	}
	return nil
}

// invalidateParent drops the cached parent, whose subcategory count changed.
func (r *subcategoryRepository) invalidateParent(ctx context.Context, categoryID int64) {
	_ = r.cache.Delete(ctx, categoryCacheKeyPrefix+strconv.FormatInt(categoryID, 10))
}
