package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/cart/model"
	pkgdb "shop-backend/pkg/database"
)

const cartColumns = `id, user_id, status, expires_at, created_at, updated_at`

const itemSelect = `
	SELECT i.id, i.cart_id, i.article_id, a.name, a.article_type, a.sales_price, i.quantity,
	       i.price_at_time, i.original_price, i.variant_id, v.name, i.prompt_id, i.generated_image_id,
	       i.position, i.created_at, i.updated_at
	FROM cart_items i
	JOIN articles a ON a.id = i.article_id
	LEFT JOIN article_mug_variants v ON v.id = i.variant_id`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanCart(row pgx.Row) (*model.Cart, error) {
	var c model.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadItems reads the items of cartID in position order. It accepts a
// transaction so order creation can read a consistent cart.
func LoadItems(ctx context.Context, q pkgdb.Querier, cartID int64) ([]model.CartItem, error) {
	rows, err := q.Query(ctx, itemSelect+` WHERE i.cart_id = $1 ORDER BY i.position, i.id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var it model.CartItem
		err := rows.Scan(&it.ID, &it.CartID, &it.ArticleID, &it.ArticleName, &it.ArticleType, &it.CurrentPrice,
			&it.Quantity, &it.PriceAtTime, &it.OriginalPrice, &it.VariantID, &it.VariantName, &it.PromptID,
			&it.GeneratedImageID, &it.Position, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}

// LockActive takes the cart row lock inside tx. Item writes and checkout
// both go through it, so a checkout never reads a half-edited cart. ok is
// false when the cart is no longer ACTIVE.
func LockActive(ctx context.Context, tx pgx.Tx, cartID int64) (bool, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 AND status = 'ACTIVE' FOR UPDATE`, cartID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock cart: %w", err)
	}
	return true, nil
}

func lockForWrite(ctx context.Context, tx pgx.Tx, cartID int64) error {
	ok, err := LockActive(ctx, tx, cartID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrCartNotActive(cartID)
	}
	return nil
}

func (r *postgresRepository) GetActiveByUser(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := scanCart(r.pool.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'ACTIVE'`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart.Items, err = LoadItems(ctx, r.pool, cart.ID); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *postgresRepository) GetOrCreateActive(ctx context.Context, userID int64, expiresAt time.Time) (*model.Cart, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (user_id, status, expires_at) VALUES ($1, 'ACTIVE', $2)
		ON CONFLICT (user_id) WHERE status = 'ACTIVE' DO NOTHING`, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	cart, err := r.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("active cart for user %d vanished after insert", userID)
	}
	return cart, nil
}

func (r *postgresRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockForWrite(ctx, tx, item.CartID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE cart_items
			SET quantity = LEAST(quantity + $2, $6), updated_at = NOW()
			WHERE cart_id = $1 AND article_id = $3
			  AND prompt_id IS NOT DISTINCT FROM $4
			  AND generated_image_id IS NOT DISTINCT FROM $5
			  AND variant_id IS NOT DISTINCT FROM $7`,
			item.CartID, item.Quantity, item.ArticleID, item.PromptID, item.GeneratedImageID, model.MaxItemQuantity,
			item.VariantID)
		if err != nil {
			return fmt.Errorf("failed to merge cart item: %w", err)
		}

		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO cart_items (cart_id, article_id, quantity, price_at_time, original_price,
					prompt_id, generated_image_id, variant_id, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
					(SELECT COALESCE(MAX(position) + 1, 0) FROM cart_items WHERE cart_id = $1))`,
				item.CartID, item.ArticleID, item.Quantity, item.PriceAtTime, item.OriginalPrice,
				item.PromptID, item.GeneratedImageID, item.VariantID)
			if err != nil {
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		}

		_, err = tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, item.CartID)
		return err
	})
}

func (r *postgresRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockForWrite(ctx, tx, cartID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE id = $2 AND cart_id = $1`,
			cartID, itemID, quantity)
		if err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCartItemNotFound(itemID)
		}
		return nil
	})
}

func (r *postgresRepository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockForWrite(ctx, tx, cartID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cartID, itemID)
		if err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCartItemNotFound(itemID)
		}
		return nil
	})
}

func (r *postgresRepository) ClearItems(ctx context.Context, cartID int64) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockForWrite(ctx, tx, cartID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) Touch(ctx context.Context, cartID int64, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE carts SET expires_at = $2, updated_at = NOW() WHERE id = $1`, cartID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to extend cart: %w", err)
	}
	return nil
}

func (r *postgresRepository) AbandonExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE carts SET status = 'ABANDONED', updated_at = NOW()
		WHERE status = 'ACTIVE' AND expires_at IS NOT NULL AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to abandon expired carts: %w", err)
	}
	return tag.RowsAffected(), nil
}
