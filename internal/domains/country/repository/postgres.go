package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/country/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/pkg/cache"
)

const (
	countryCacheKeyPrefix = "country:"
	countryListKey        = "countries:list"
	cacheTTL              = 15 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

const countryColumns = `id, name, created_at, updated_at`

func scanCountry(row pgx.Row) (*model.Country, error) {
	var c model.Country
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Country) (*model.Country, error) {
	created, err := scanCountry(r.pool.QueryRow(ctx,
		`INSERT INTO countries (name) VALUES ($1) RETURNING `+countryColumns, c.Name))
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCountryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

// GetByID is read-through cached.
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	key := countryCacheKeyPrefix + strconv.FormatInt(id, 10)

	var cached model.Country
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	c, err := scanCountry(r.pool.QueryRow(ctx,
		`SELECT `+countryColumns+` FROM countries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCountryNotFound(id)
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}

	_ = r.cache.Set(ctx, key, c, cacheTTL)
	return c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Country, error) {
	var cached []model.Country
	if found, err := r.cache.Get(ctx, countryListKey, &cached); err == nil && found {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	countries := []model.Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	_ = r.cache.Set(ctx, countryListKey, countries, cacheTTL)
	return countries, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Country) (*model.Country, error) {
	updated, err := scanCountry(r.pool.QueryRow(ctx,
		`UPDATE countries SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+countryColumns,
		c.ID, c.Name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCountryNotFound(c.ID)
		}
		if _, ok := database.UniqueViolation(err); ok {
			return nil, model.ErrCountryNameExists(c.Name)
		}
		return nil, fmt.Errorf("failed to update country: %w", err)
	}

	r.invalidate(ctx, c.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrCountryInUse(id)
		}
		return fmt.Errorf("failed to delete country: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCountryNotFound(id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM countries WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check country name: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, ids ...int64) {
	keys := []string{countryListKey}
	for _, id := range ids {
		keys = append(keys, countryCacheKeyPrefix+strconv.FormatInt(id, 10))
	}
	_ = r.cache.Delete(ctx, keys...)
}
