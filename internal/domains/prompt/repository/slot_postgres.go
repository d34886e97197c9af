package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/prompt/model"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/shared/utils"
	pkgdb "shop-backend/pkg/database"
)

const slotTypeSelect = `
	SELECT t.id, t.name, t.position,
	       (SELECT COUNT(*) FROM prompt_slot_variants v WHERE v.slot_type_id = t.id),
	       t.created_at, t.updated_at
	FROM prompt_slot_types t`

// slotVariantSelect joins the slot type so lists can order by position.
const slotVariantSelect = `
	SELECT v.id, v.slot_type_id, t.name, t.position, v.name, v.prompt, v.description,
	       v.example_image_filename, v.created_at, v.updated_at
	FROM prompt_slot_variants v
	JOIN prompt_slot_types t ON t.id = v.slot_type_id`

type slotTypeRepository struct {
	pool *pgxpool.Pool
}

func NewSlotTypeRepository(pool *pgxpool.Pool) SlotTypeRepository {
	return &slotTypeRepository{pool: pool}
}

func scanSlotType(row pgx.Row) (*model.PromptSlotType, error) {
	var t model.PromptSlotType
	if err := row.Scan(&t.ID, &t.Name, &t.Position, &t.VariantsCount, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// slotTypeWriteError maps the two unique indexes to 409s.
func slotTypeWriteError(err error, t *model.PromptSlotType) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	if constraint == "ux_prompt_slot_types_position" {
		return model.ErrSlotTypePositionTaken(t.Position)
	}
	return model.ErrSlotTypeNameExists(t.Name)
}

func (r *slotTypeRepository) Create(ctx context.Context, t *model.PromptSlotType) (*model.PromptSlotType, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO prompt_slot_types (name, position) VALUES ($1, $2) RETURNING id`, t.Name, t.Position).Scan(&id)
	if err != nil {
		if mapped := slotTypeWriteError(err, t); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create prompt slot type: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *slotTypeRepository) GetByID(ctx context.Context, id int64) (*model.PromptSlotType, error) {
	t, err := scanSlotType(r.pool.QueryRow(ctx, slotTypeSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSlotTypeNotFound(id)
		}
		return nil, fmt.Errorf("failed to get prompt slot type: %w", err)
	}
	return t, nil
}

func (r *slotTypeRepository) List(ctx context.Context) ([]model.PromptSlotType, error) {
	rows, err := r.pool.Query(ctx, slotTypeSelect+` ORDER BY t.position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt slot types: %w", err)
	}
	defer rows.Close()

	types := []model.PromptSlotType{}
	for rows.Next() {
		t, err := scanSlotType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt slot type: %w", err)
		}
		types = append(types, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prompt slot types: %w", err)
	}
	return types, nil
}

func (r *slotTypeRepository) Update(ctx context.Context, t *model.PromptSlotType) (*model.PromptSlotType, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE prompt_slot_types SET name = $2, position = $3, updated_at = NOW() WHERE id = $1`,
		t.ID, t.Name, t.Position)
	if err != nil {
		if mapped := slotTypeWriteError(err, t); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update prompt slot type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrSlotTypeNotFound(t.ID)
	}
	return r.GetByID(ctx, t.ID)
}

func (r *slotTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prompt_slot_types WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrSlotTypeInUse(id)
		}
		return fmt.Errorf("failed to delete prompt slot type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSlotTypeNotFound(id)
	}
	return nil
}

type slotVariantRepository struct {
	pool *pgxpool.Pool
}

func NewSlotVariantRepository(pool *pgxpool.Pool) SlotVariantRepository {
	return &slotVariantRepository{pool: pool}
}

func scanSlotVariant(row pgx.Row) (*model.PromptSlotVariant, error) {
	var v model.PromptSlotVariant
	err := row.Scan(&v.ID, &v.SlotTypeID, &v.SlotTypeName, &v.SlotTypePosition, &v.Name, &v.Prompt, &v.Description,
		&v.ExampleImageFilename, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func querySlotVariants(ctx context.Context, q pkgdb.Querier, sql string, args ...any) ([]model.PromptSlotVariant, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt slot variants: %w", err)
	}
	defer rows.Close()

	variants := []model.PromptSlotVariant{}
	for rows.Next() {
		v, err := scanSlotVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt slot variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prompt slot variants: %w", err)
	}
	return variants, nil
}

func (r *slotVariantRepository) mapWriteError(err error, v *model.PromptSlotVariant) error {
	if _, ok := database.UniqueViolation(err); ok {
		return model.ErrSlotVariantNameExists(v.Name)
	}
	if _, ok := database.ForeignKeyViolation(err); ok {
		return model.ErrSlotTypeNotFound(v.SlotTypeID)
	}
	return nil
}

func (r *slotVariantRepository) Create(ctx context.Context, v *model.PromptSlotVariant) (*model.PromptSlotVariant, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO prompt_slot_variants (slot_type_id, name, prompt, description, example_image_filename)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		v.SlotTypeID, v.Name, v.Prompt, v.Description, v.ExampleImageFilename).Scan(&id)
	if err != nil {
		if mapped := r.mapWriteError(err, v); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create prompt slot variant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *slotVariantRepository) GetByID(ctx context.Context, id int64) (*model.PromptSlotVariant, error) {
	v, err := scanSlotVariant(r.pool.QueryRow(ctx, slotVariantSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSlotVariantNotFound(id)
		}
		return nil, fmt.Errorf("failed to get prompt slot variant: %w", err)
	}
	return v, nil
}

func (r *slotVariantRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.PromptSlotVariant, error) {
	if len(ids) == 0 {
		return []model.PromptSlotVariant{}, nil
	}
	return querySlotVariants(ctx, r.pool, slotVariantSelect+` WHERE v.id = ANY($1) ORDER BY t.position, v.id`, ids)
}

func (r *slotVariantRepository) List(ctx context.Context, slotTypeID *int64) ([]model.PromptSlotVariant, error) {
	var where utils.Where
	if slotTypeID != nil {
		where.Add("v.slot_type_id = ?", *slotTypeID)
	}
	return querySlotVariants(ctx, r.pool, slotVariantSelect+where.SQL()+` ORDER BY t.position, v.name`, where.Args()...)
}

func (r *slotVariantRepository) Update(ctx context.Context, v *model.PromptSlotVariant) (*model.PromptSlotVariant, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prompt_slot_variants
		SET slot_type_id = $2, name = $3, prompt = $4, description = $5,
		    example_image_filename = $6, updated_at = NOW()
		WHERE id = $1`,
		v.ID, v.SlotTypeID, v.Name, v.Prompt, v.Description, v.ExampleImageFilename)
	if err != nil {
		if mapped := r.mapWriteError(err, v); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update prompt slot variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrSlotVariantNotFound(v.ID)
	}
	return r.GetByID(ctx, v.ID)
}

func (r *slotVariantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prompt_slot_variants WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return model.ErrSlotVariantInUse(id)
		}
		return fmt.Errorf("failed to delete prompt slot variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSlotVariantNotFound(id)
	}
	return nil
}
