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

const cacheTTL = 10 * time.Minute

const articleSelect = `
	SELECT a.id, a.name, a.description_short, a.description_long, a.article_type, a.active,
	       a.category_id, c.name, a.subcategory_id, sc.name,
	       a.supplier_id, s.name, a.vat_id, v.percent, a.purchase_price, a.sales_price,
	       a.supplier_article_number, a.created_at, a.updated_at
	FROM articles a
	LEFT JOIN article_categories c ON c.id = a.category_id
	LEFT JOIN article_subcategories sc ON sc.id = a.subcategory_id
	LEFT JOIN suppliers s ON s.id = a.supplier_id
	LEFT JOIN vats v ON v.id = a.vat_id`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanArticle(row pgx.Row) (*model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID, &a.Name, &a.DescriptionShort, &a.DescriptionLong, &a.ArticleType, &a.Active,
		&a.CategoryID, &a.CategoryName, &a.SubcategoryID, &a.SubcategoryName,
		&a.SupplierID, &a.SupplierName, &a.VatID, &a.VatPercent, &a.PurchasePrice, &a.SalesPrice,
		&a.SupplierArticleNumber, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO articles (name, description_short, description_long, article_type, active,
			supplier_id, vat_id, purchase_price, sales_price, supplier_article_number,
			category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		a.Name, a.DescriptionShort, a.DescriptionLong, a.ArticleType, a.Active,
		a.SupplierID, a.VatID, a.PurchasePrice, a.SalesPrice, a.SupplierArticleNumber,
		a.CategoryID, a.SubcategoryID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	key := shared.ArticleCacheKeyPrefix + strconv.FormatInt(id, 10)

	var cached model.Article
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	a, err := scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound(id)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	_ = r.cache.Set(ctx, key, a, cacheTTL)
	return a, nil
}

func buildWhere(filter model.ListFilter) *utils.Where {
	w := &utils.Where{}
	if filter.ArticleType != "" {
		w.Add("a.article_type = ?", filter.ArticleType)
	}
	if filter.Active != nil {
		w.Add("a.active = ?", *filter.Active)
	}
	if filter.CategoryID != nil {
		w.Add("a.category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		w.Add("a.subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.Search != "" {
		w.Add("(a.name ILIKE ? OR a.supplier_article_number ILIKE ?)", utils.ContainsPattern(filter.Search))
	}
	return w
}

// List returns one page and the total number of matching rows. A zero
// Limit returns every match.
func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Article, int64, error) {
	where := buildWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles a`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	query := articleSelect + where.SQL() + ` ORDER BY a.id`
	args := where.Args()
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, where.Next(), where.Next()+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Article) (*model.Article, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET name = $2, description_short = $3, description_long = $4, article_type = $5, active = $6,
		    supplier_id = $7, vat_id = $8, purchase_price = $9, sales_price = $10,
		    supplier_article_number = $11, category_id = $12, subcategory_id = $13, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.Name, a.DescriptionShort, a.DescriptionLong, a.ArticleType, a.Active,
		a.SupplierID, a.VatID, a.PurchasePrice, a.SalesPrice, a.SupplierArticleNumber,
		a.CategoryID, a.SubcategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrArticleNotFound(a.ID)
	}

	r.invalidate(ctx, a.ID)
	return r.GetByID(ctx, a.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrArticleInUse(id)
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound(id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	_ = r.cache.Delete(ctx, shared.ArticleCacheKeyPrefix+strconv.FormatInt(id, 10))
}
