package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/article/model"
	"shop-backend/internal/infrastructure/database"
	pkgdb "shop-backend/pkg/database"
)

const variantColumns = `id, article_id, inside_color_code, outside_color_code, name,
	article_variant_number, is_default, active, created_at, updated_at`

type variantRepository struct {
	pool *pgxpool.Pool
}

func NewVariantRepository(pool *pgxpool.Pool) VariantRepository {
	return &variantRepository{pool: pool}
}

func scanVariant(row pgx.Row) (*model.MugVariant, error) {
	var v model.MugVariant
	err := row.Scan(&v.ID, &v.ArticleID, &v.InsideColorCode, &v.OutsideColorCode, &v.Name,
		&v.ArticleVariantNumber, &v.IsDefault, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func clearDefaultVariant(ctx context.Context, tx pgx.Tx, articleID, exceptID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE article_mug_variants SET is_default = FALSE, updated_at = NOW()
		WHERE article_id = $1 AND is_default AND id <> $2`, articleID, exceptID)
	if err != nil {
		return fmt.Errorf("failed to clear default variant: %w", err)
	}
	return nil
}

func (r *variantRepository) Create(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error) {
	created, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.MugVariant, error) {
		if v.IsDefault {
			if err := clearDefaultVariant(ctx, tx, v.ArticleID, 0); err != nil {
				return nil, err
			}
		}
		return scanVariant(tx.QueryRow(ctx, `
			INSERT INTO article_mug_variants (article_id, inside_color_code, outside_color_code, name,
				article_variant_number, is_default, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+variantColumns,
			v.ArticleID, v.InsideColorCode, v.OutsideColorCode, v.Name, v.ArticleVariantNumber, v.IsDefault, v.Active))
	})
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return nil, model.ErrArticleNotFound(v.ArticleID)
		}
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrDefaultVariantRace(v.ArticleID)
		}
		return nil, fmt.Errorf("failed to create mug variant: %w", err)
	}
	return created, nil
}

func (r *variantRepository) GetByID(ctx context.Context, id int64) (*model.MugVariant, error) {
	v, err := scanVariant(r.pool.QueryRow(ctx, `SELECT `+variantColumns+` FROM article_mug_variants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMugVariantNotFound(id)
		}
		return nil, fmt.Errorf("failed to get mug variant: %w", err)
	}
	return v, nil
}

// ListByArticle puts the default variant first.
func (r *variantRepository) ListByArticle(ctx context.Context, articleID int64, activeOnly bool) ([]model.MugVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM article_mug_variants WHERE article_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY is_default DESC, id`, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mug variants: %w", err)
	}
	defer rows.Close()

	variants := []model.MugVariant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mug variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mug variants: %w", err)
	}
	return variants, nil
}

func (r *variantRepository) Update(ctx context.Context, v *model.MugVariant) (*model.MugVariant, error) {
	updated, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.MugVariant, error) {
		if v.IsDefault {
			if err := clearDefaultVariant(ctx, tx, v.ArticleID, v.ID); err != nil {
				return nil, err
			}
		}
		return scanVariant(tx.QueryRow(ctx, `
			UPDATE article_mug_variants
			SET inside_color_code = $2, outside_color_code = $3, name = $4, article_variant_number = $5,
			    is_default = $6, active = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING `+variantColumns,
			v.ID, v.InsideColorCode, v.OutsideColorCode, v.Name, v.ArticleVariantNumber, v.IsDefault, v.Active))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMugVariantNotFound(v.ID)
		}
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrDefaultVariantRace(v.ArticleID)
		}
		return nil, fmt.Errorf("failed to update mug variant: %w", err)
	}
	return updated, nil
}

// Delete leaves cart lines that used the variant without one.
func (r *variantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM article_mug_variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mug variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMugVariantNotFound(id)
	}
	return nil
}
