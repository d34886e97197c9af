package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared"
	"shop-backend/pkg/cache"
	pkgdb "shop-backend/pkg/database"
)

const (
	vatCacheKeyPrefix = "vat:"
	vatDefaultKey     = "vat:default"
	vatListKey        = "vats:list"
	cacheTTL          = 15 * time.Minute
)

const defaultIndex = "ux_vats_default"

const vatColumns = `id, name, percent, description, is_default, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanVat(row pgx.Row) (*model.Vat, error) {
	var v model.Vat
	err := row.Scan(&v.ID, &v.Name, &v.Percent, &v.Description, &v.IsDefault, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func clearDefault(ctx context.Context, tx pgx.Tx, exceptID int64) error {
	_, err := tx.Exec(ctx, `UPDATE vats SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id <> $1`, exceptID)
	if err != nil {
		return fmt.Errorf("failed to clear default vat: %w", err)
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, v *model.Vat) (*model.Vat, error) {
	created, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Vat, error) {
		if v.IsDefault {
			if err := clearDefault(ctx, tx, 0); err != nil {
				return nil, err
			}
		}
		return scanVat(tx.QueryRow(ctx,
			`INSERT INTO vats (name, percent, description, is_default) VALUES ($1, $2, $3, $4) RETURNING `+vatColumns,
			v.Name, v.Percent, v.Description, v.IsDefault))
	})
	if err != nil {
		if dup := uniqueErr(err, v); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create vat: %w", err)
	}

	r.invalidateAll(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, v *model.Vat) (*model.Vat, error) {
	updated, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Vat, error) {
		if v.IsDefault {
			if err := clearDefault(ctx, tx, v.ID); err != nil {
				return nil, err
			}
		}
		return scanVat(tx.QueryRow(ctx,
			`UPDATE vats SET name = $2, percent = $3, description = $4, is_default = $5, updated_at = NOW()
			 WHERE id = $1 RETURNING `+vatColumns,
			v.ID, v.Name, v.Percent, v.Description, v.IsDefault))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVatNotFound(v.ID)
		}
		if dup := uniqueErr(err, v); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update vat: %w", err)
	}

	r.invalidateAll(ctx)
	return updated, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Vat, error) {
	key := vatCacheKeyPrefix + strconv.FormatInt(id, 10)
	var cached model.Vat
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	v, err := scanVat(r.pool.QueryRow(ctx, `SELECT `+vatColumns+` FROM vats WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVatNotFound(id)
		}
		return nil, fmt.Errorf("failed to get vat: %w", err)
	}

	_ = r.cache.Set(ctx, key, v, cacheTTL)
	return v, nil
}

func (r *postgresRepository) GetDefault(ctx context.Context) (*model.Vat, error) {
	var cached model.Vat
	if found, err := r.cache.Get(ctx, vatDefaultKey, &cached); err == nil && found {
		return &cached, nil
	}

	v, err := scanVat(r.pool.QueryRow(ctx, `SELECT `+vatColumns+` FROM vats WHERE is_default LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoDefaultVat
		}
		return nil, fmt.Errorf("failed to get default vat: %w", err)
	}

	_ = r.cache.Set(ctx, vatDefaultKey, v, cacheTTL)
	return v, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Vat, error) {
	var cached []model.Vat
	if found, err := r.cache.Get(ctx, vatListKey, &cached); err == nil && found {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+vatColumns+` FROM vats ORDER BY percent, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vats: %w", err)
	}
	defer rows.Close()

	vats := []model.Vat{}
	for rows.Next() {
		v, err := scanVat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vat: %w", err)
		}
		vats = append(vats, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vats: %w", err)
	}

	_ = r.cache.Set(ctx, vatListKey, vats, cacheTTL)
	return vats, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vats WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrVatInUse(id)
		}
		return fmt.Errorf("failed to delete vat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVatNotFound(id)
	}

	r.invalidateAll(ctx)
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vats WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vat name: %w", err)
	}
	return exists, nil
}

// invalidateAll drops every vat key: a default change touches other rows too.
// Cached articles carry the percent and go with them.
func (r *postgresRepository) invalidateAll(ctx context.Context) {
	_ = r.cache.DeletePattern(ctx, "vat:*")
	_ = r.cache.Delete(ctx, vatListKey)
	_ = r.cache.DeletePattern(ctx, shared.ArticleCacheKeyPrefix+"*")
}

// uniqueErr maps a unique index violation. A concurrent default switch
// trips ux_vats_default instead of the name index.
func uniqueErr(err error, v *model.Vat) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	if constraint == defaultIndex {
		return model.ErrDefaultVatChanged
	}
	return model.ErrVatNameExists(v.Name)
}
