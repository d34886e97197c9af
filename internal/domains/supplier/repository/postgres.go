package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	countrymodel "shop-backend/internal/domains/country/model"
	"shop-backend/internal/domains/supplier/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared"
	"shop-backend/pkg/cache"
)

const supplierColumns = `id, name, title, first_name, last_name, street, house_number, city,
	postal_code, country_id, phone_number1, phone_number2, phone_number3, email, website,
	created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanSupplier(row pgx.Row) (*model.Supplier, error) {
	var s model.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.Title, &s.FirstName, &s.LastName, &s.Street, &s.HouseNumber, &s.City,
		&s.PostalCode, &s.CountryID, &s.PhoneNumber1, &s.PhoneNumber2, &s.PhoneNumber3, &s.Email, &s.Website,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func args(s *model.Supplier) []any {
	return []any{
		s.Name, s.Title, s.FirstName, s.LastName, s.Street, s.HouseNumber, s.City,
		s.PostalCode, s.CountryID, s.PhoneNumber1, s.PhoneNumber2, s.PhoneNumber3, s.Email, s.Website,
	}
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	query := `
		INSERT INTO suppliers (name, title, first_name, last_name, street, house_number, city,
			postal_code, country_id, phone_number1, phone_number2, phone_number3, email, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + supplierColumns

	created, err := scanSupplier(r.pool.QueryRow(ctx, query, args(s)...))
	if err != nil {
		return nil, r.mapWriteError(err, s)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	s, err := scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSupplierNotFound(id)
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []model.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *postgresRepository) Update(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	query := `
		UPDATE suppliers
		SET name = $1, title = $2, first_name = $3, last_name = $4, street = $5, house_number = $6,
		    city = $7, postal_code = $8, country_id = $9, phone_number1 = $10, phone_number2 = $11,
		    phone_number3 = $12, email = $13, website = $14, updated_at = NOW()
		WHERE id = $15
		RETURNING ` + supplierColumns

	updated, err := scanSupplier(r.pool.QueryRow(ctx, query, append(args(s), s.ID)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSupplierNotFound(s.ID)
		}
		return nil, r.mapWriteError(err, s)
	}
	r.invalidateArticles(ctx)
	return updated, nil
}

// invalidateArticles drops cached articles, which embed the supplier name.
func (r *postgresRepository) invalidateArticles(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.DeletePattern(ctx, shared.ArticleCacheKeyPrefix+"*")
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrSupplierInUse(id)
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSupplierNotFound(id)
	}
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE LOWER(name) = LOWER($1) AND id <> $2)`, name, excludeID)
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE LOWER(email) = LOWER($1) AND id <> $2)`, email, excludeID)
}

func (r *postgresRepository) exists(ctx context.Context, query string, value string, excludeID int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check supplier uniqueness: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) mapWriteError(err error, s *model.Supplier) error {
	if constraint, ok := database.UniqueViolation(err); ok {
		if constraint == "ux_suppliers_email" && s.Email != nil {
			return model.ErrSupplierEmailExists(*s.Email)
		}
		if s.Name != nil {
			return model.ErrSupplierNameExists(*s.Name)
		}
	}
	if _, ok := database.ForeignKeyViolation(err); ok && s.CountryID != nil {
		return countrymodel.ErrCountryNotFound(*s.CountryID)
	}
	return fmt.Errorf("failed to save supplier: %w", err)
}
