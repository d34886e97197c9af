package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/pdf/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/utils"
)

const pdfColumns = `id, kind, order_id, article_id, filename, storage_key, size_bytes, created_at`

// orderIndex allows one ORDER document per order.
const orderIndex = "ux_pdf_documents_order"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanPdf(row pgx.Row) (*model.PdfDocument, error) {
	var d model.PdfDocument
	if err := row.Scan(&d.ID, &d.Kind, &d.OrderID, &d.ArticleID, &d.Filename, &d.StorageKey, &d.Size, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, d *model.PdfDocument) (*model.PdfDocument, error) {
	created, err := scanPdf(r.pool.QueryRow(ctx, `
		INSERT INTO pdf_documents (kind, order_id, article_id, filename, storage_key, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+pdfColumns,
		d.Kind, d.OrderID, d.ArticleID, d.Filename, d.StorageKey, d.Size))
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == orderIndex {
			return nil, model.ErrOrderPdfExists
		}
		return nil, fmt.Errorf("failed to create pdf document: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.PdfDocument, error) {
	d, err := scanPdf(r.pool.QueryRow(ctx, `SELECT `+pdfColumns+` FROM pdf_documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPdfNotFound(id)
		}
		return nil, fmt.Errorf("failed to get pdf document: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) LatestForOrder(ctx context.Context, orderID int64) (*model.PdfDocument, error) {
	d, err := scanPdf(r.pool.QueryRow(ctx, `
		SELECT `+pdfColumns+` FROM pdf_documents
		WHERE kind = 'ORDER' AND order_id = $1
		ORDER BY created_at DESC, id DESC LIMIT 1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderPdfNotFound(orderID)
		}
		return nil, fmt.Errorf("failed to get order pdf: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.PdfDocument, int64, error) {
	var where utils.Where
	if filter.Kind != "" {
		where.Add("kind = ?", filter.Kind)
	}
	if filter.OrderID != nil {
		where.Add("order_id = ?", *filter.OrderID)
	}
	if filter.ArticleID != nil {
		where.Add("article_id = ?", *filter.ArticleID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pdf_documents`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pdf documents: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM pdf_documents%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		pdfColumns, where.SQL(), where.Next(), where.Next()+1)
	args := append(where.Args(), filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pdf documents: %w", err)
	}
	defer rows.Close()

	docs := []model.PdfDocument{}
	for rows.Next() {
		d, err := scanPdf(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pdf document: %w", err)
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating pdf documents: %w", err)
	}
	return docs, total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pdf_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pdf document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPdfNotFound(id)
	}
	return nil
}
