package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/utils"
	pkgdb "shop-backend/pkg/database"
)

// promptSelect joins the category and subcategory names; every read goes
// through it.
const promptSelect = `
	SELECT p.id, p.title, p.prompt_text, p.category_id, c.name, p.subcategory_id, s.name, p.active,
	       p.example_image_filename, p.created_at, p.updated_at
	FROM prompts p
	LEFT JOIN prompt_categories c ON c.id = p.category_id
	LEFT JOIN prompt_subcategories s ON s.id = p.subcategory_id`

type promptRepository struct {
	pool *pgxpool.Pool
}

func NewPromptRepository(pool *pgxpool.Pool) PromptRepository {
	return &promptRepository{pool: pool}
}

func scanPrompt(row pgx.Row) (*model.Prompt, error) {
	var p model.Prompt
	err := row.Scan(&p.ID, &p.Title, &p.PromptText, &p.CategoryID, &p.CategoryName, &p.SubcategoryID,
		&p.SubcategoryName, &p.Active, &p.ExampleImageFilename, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapWriteError turns foreign key violations into not-found errors for
// the referenced row.
func mapWriteError(err error, p *model.Prompt) error {
	constraint, ok := database.ForeignKeyViolation(err)
	if !ok {
		return nil
	}
	switch {
	case constraint == "prompts_subcategory_id_fkey" && p.SubcategoryID != nil:
		return model.ErrSubcategoryNotFound(*p.SubcategoryID)
	case constraint == "prompt_slot_variant_mappings_slot_variant_id_fkey":
		return apperror.BadRequest("One of the slots no longer exists")
	case p.CategoryID != nil:
		return model.ErrCategoryNotFound(*p.CategoryID)
	}
	return nil
}

// Create inserts the prompt and its slot mappings in one transaction.
func (r *promptRepository) Create(ctx context.Context, p *model.Prompt) (*model.Prompt, error) {
	id, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO prompts (title, prompt_text, category_id, subcategory_id, active, example_image_filename)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			p.Title, p.PromptText, p.CategoryID, p.SubcategoryID, p.Active, p.ExampleImageFilename).Scan(&id)
		if err != nil {
			return 0, err
		}
		return id, replaceSlots(ctx, tx, id, p.Slots)
	})
	if err != nil {
		if mapped := mapWriteError(err, p); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return r.GetByID(ctx, id)
}

func replaceSlots(ctx context.Context, tx pgx.Tx, promptID int64, slots []model.PromptSlotVariant) error {
	if _, err := tx.Exec(ctx, `DELETE FROM prompt_slot_variant_mappings WHERE prompt_id = $1`, promptID); err != nil {
		return err
	}
	for _, slot := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO prompt_slot_variant_mappings (prompt_id, slot_variant_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			promptID, slot.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// loadSlots attaches the mapped slot variants to each prompt.
func (r *promptRepository) loadSlots(ctx context.Context, prompts []model.Prompt) error {
	if len(prompts) == 0 {
		return nil
	}
	ids := make([]int64, len(prompts))
	index := make(map[int64]int, len(prompts))
	for i := range prompts {
		ids[i] = prompts[i].ID
		index[prompts[i].ID] = i
		prompts[i].Slots = []model.PromptSlotVariant{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT m.prompt_id, v.id, v.slot_type_id, t.name, t.position, v.name, v.prompt, v.description,
		       v.example_image_filename, v.created_at, v.updated_at
		FROM prompt_slot_variant_mappings m
		JOIN prompt_slot_variants v ON v.id = m.slot_variant_id
		JOIN prompt_slot_types t ON t.id = v.slot_type_id
		WHERE m.prompt_id = ANY($1)
		ORDER BY t.position, v.id`, ids)
	if err != nil {
		return fmt.Errorf("failed to load prompt slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var promptID int64
		var v model.PromptSlotVariant
		err := rows.Scan(&promptID, &v.ID, &v.SlotTypeID, &v.SlotTypeName, &v.SlotTypePosition, &v.Name,
			&v.Prompt, &v.Description, &v.ExampleImageFilename, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan prompt slot: %w", err)
		}
		if i, ok := index[promptID]; ok {
			prompts[i].Slots = append(prompts[i].Slots, v)
		}
	}
	return rows.Err()
}

func (r *promptRepository) GetByID(ctx context.Context, id int64) (*model.Prompt, error) {
	p, err := scanPrompt(r.pool.QueryRow(ctx, promptSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromptNotFound(id)
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	one := []model.Prompt{*p}
	if err := r.loadSlots(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *promptRepository) List(ctx context.Context, activeOnly bool) ([]model.Prompt, error) {
	var where utils.Where
	if activeOnly {
		where.AddRaw("p.active")
	}
	return r.query(ctx, promptSelect+where.SQL()+` ORDER BY p.id`, where.Args()...)
}

func (r *promptRepository) SearchByTitle(ctx context.Context, title string) ([]model.Prompt, error) {
	return r.query(ctx, promptSelect+` WHERE p.title ILIKE $1 ORDER BY p.title, p.id`, utils.ContainsPattern(title))
}

func (r *promptRepository) query(ctx context.Context, sql string, args ...any) ([]model.Prompt, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prompts: %w", err)
	}
	rows.Close()

	if err := r.loadSlots(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// Update rewrites the prompt and replaces its slot mappings.
func (r *promptRepository) Update(ctx context.Context, p *model.Prompt) (*model.Prompt, error) {
	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE prompts
			SET title = $2, prompt_text = $3, category_id = $4, subcategory_id = $5, active = $6,
			    example_image_filename = $7, updated_at = NOW()
			WHERE id = $1`,
			p.ID, p.Title, p.PromptText, p.CategoryID, p.SubcategoryID, p.Active, p.ExampleImageFilename)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrPromptNotFound(p.ID)
		}
		return replaceSlots(ctx, tx, p.ID, p.Slots)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		if mapped := mapWriteError(err, p); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *promptRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromptNotFound(id)
	}
	return nil
}
