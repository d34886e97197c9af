package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/user/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/cache"
)

const (
	userCacheKeyPrefix = "user:"
	cacheTTL           = 10 * time.Minute

	usernameIndex = "ux_users_username"
)

const userColumns = `id, username, email, first_name, last_name, phone_number, password_hash, roles, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// uniqueErr maps a unique index violation to the field that collided.
func uniqueErr(err error, u *model.User) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	if constraint == usernameIndex {
		return model.ErrUsernameExists(u.Username)
	}
	return model.ErrEmailExists(u.Email)
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, first_name, last_name, phone_number, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.PasswordHash, u.Roles))
	if err != nil {
		if appErr := uniqueErr(err, u); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	key := userCacheKeyPrefix + strconv.FormatInt(id, 10)

	var cached model.User
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound(id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	_ = r.cache.Set(ctx, key, u, cacheTTL)
	return u, nil
}

// GetByEmail is not cached; login must see the current password hash.
func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserEmailNotFound(email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.User, int64, error) {
	var where utils.Where
	if filter.Search != "" {
		where.Add("(username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?)", utils.ContainsPattern(filter.Search))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY id LIMIT $%d OFFSET $%d`,
		userColumns, where.SQL(), where.Next(), where.Next()+1)
	args := append(where.Args(), filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}
	return users, total, nil
}

// Update keeps the stored password hash when u.PasswordHash is empty. Cached
// users never carry the hash.
func (r *postgresRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, first_name = $4, last_name = $5,
		    phone_number = $6, password_hash = COALESCE(NULLIF($7, ''), password_hash), roles = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.PasswordHash, u.Roles))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound(u.ID)
		}
		if appErr := uniqueErr(err, u); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.invalidate(ctx, u.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrUserInUse(id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound(id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	_ = r.cache.Delete(ctx, userCacheKeyPrefix+strconv.FormatInt(id, 10))
}
