package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cartrepo "shop-backend/internal/domains/cart/repository"
	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/utils"
	pkgdb "shop-backend/pkg/database"
)

const orderColumns = `
	id, order_number, user_id, customer_email, customer_first_name, customer_last_name, customer_phone,
	shipping_address, billing_address, subtotal, tax_amount, shipping_amount, total_amount,
	status, cart_id, notes, pdf_url, created_at, updated_at`

const itemColumns = `
	id, order_id, article_id, article_name, quantity, price_per_item, total_price, vat_percent,
	variant_id, variant_name, prompt_id, generated_image_id, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerEmail, &o.CustomerFirstName, &o.CustomerLastName,
		&o.CustomerPhone, &o.ShippingAddress, &o.BillingAddress, &o.Subtotal, &o.TaxAmount,
		&o.ShippingAmount, &o.TotalAmount, &o.Status, &o.CartID, &o.Notes, &o.PdfURL,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanItem(row pgx.Row) (model.OrderItem, error) {
	var it model.OrderItem
	err := row.Scan(
		&it.ID, &it.OrderID, &it.ArticleID, &it.ArticleName, &it.Quantity, &it.PricePerItem,
		&it.TotalPrice, &it.VatPercent, &it.VariantID, &it.VariantName, &it.PromptID, &it.GeneratedImageID,
		&it.CreatedAt,
	)
	return it, err
}

func (r *postgresRepository) CreateFromCart(ctx context.Context, cartID int64, build BuildFunc) (*model.Order, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Order, error) {
		ok, err := cartrepo.LockActive(ctx, tx, cartID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrCartAlreadyOrdered(cartID)
		}

		items, err := cartrepo.LoadItems(ctx, tx, cartID)
		if err != nil {
			return nil, err
		}
		o, err := build(items)
		if err != nil {
			return nil, err
		}
		o.CartID = cartID

		if _, err := tx.Exec(ctx,
			`UPDATE carts SET status = 'CONVERTED', updated_at = NOW() WHERE id = $1`, cartID); err != nil {
			return nil, fmt.Errorf("failed to convert cart: %w", err)
		}

		query := `
			INSERT INTO orders (
				order_number, user_id, customer_email, customer_first_name, customer_last_name, customer_phone,
				shipping_address, billing_address, subtotal, tax_amount, shipping_amount, total_amount,
				status, cart_id, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING ` + orderColumns

		created, err := scanOrder(tx.QueryRow(ctx, query,
			o.OrderNumber, o.UserID, o.CustomerEmail, o.CustomerFirstName, o.CustomerLastName, o.CustomerPhone,
			o.ShippingAddress, o.BillingAddress, o.Subtotal, o.TaxAmount, o.ShippingAmount, o.TotalAmount,
			o.Status, o.CartID, o.Notes,
		))
		if err != nil {
			if _, ok := database.UniqueViolation(err); ok {
				return nil, model.ErrCartAlreadyOrdered(o.CartID)
			}
			return nil, fmt.Errorf("failed to create order: %w", err)
		}

		if created.Items, err = insertItems(ctx, tx, created.ID, o.Items); err != nil {
			return nil, err
		}
		return created, nil
	})
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderItem) ([]model.OrderItem, error) {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_items (
			order_id, article_id, article_name, quantity, price_per_item, total_price, vat_percent,
			variant_id, variant_name, prompt_id, generated_image_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + itemColumns

	for _, it := range items {
		batch.Queue(query, orderID, it.ArticleID, it.ArticleName, it.Quantity, it.PricePerItem,
			it.TotalPrice, it.VatPercent, it.VariantID, it.VariantName, it.PromptID, it.GeneratedImageID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	out := make([]model.OrderItem, 0, len(items))
	for i := range items {
		it, err := scanItem(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("failed to create order item %d: %w", i, err)
		}
		out = append(out, it)
	}
	return out, nil
}

// loadItems fills the items of every order in one query.
func (r *postgresRepository) loadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*model.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []model.OrderItem{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound(id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if err := r.loadItems(ctx, []*model.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Order, int64, error) {
	var where utils.Where
	if filter.UserID != nil {
		where.Add("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		where.Add("status = ?", filter.Status)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where.SQL(), where.Next(), where.Next()+1)
	args := append(where.Args(), filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var ptrs []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}
	rows.Close()

	if err := r.loadItems(ctx, ptrs); err != nil {
		return nil, 0, err
	}

	orders := make([]model.Order, len(ptrs))
	for i, o := range ptrs {
		orders[i] = *o
	}
	return orders, total, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING `+orderColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound(id)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if err := r.loadItems(ctx, []*model.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) SetPdfURL(ctx context.Context, id int64, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET pdf_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("failed to set order pdf url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound(id)
	}
	return nil
}

// Delete removes the order; order_items cascade.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound(id)
	}
	return nil
}
