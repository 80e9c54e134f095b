package repository

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resourceColumns = `id, name, kind, unit, total_quantity, created_at, updated_at`

type ResourceRepository struct {
	db DBTX
}

func NewResourceRepository(db DBTX) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.Name(), string(res.Kind()), res.Unit(), res.TotalQuantity(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrap("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) UpdateDetails(ctx context.Context, res *resource.Resource) error {
	return execAffectingOne(ctx, r.db, "failed to update resource", `
		UPDATE resources SET name = $2, kind = $3, unit = $4, updated_at = $5
		WHERE id = $1`,
		res.ID(), res.Name(), string(res.Kind()), res.Unit(), res.UpdatedAt(),
	)
}

func (r *ResourceRepository) UpdateTotal(ctx context.Context, res *resource.Resource) error {
	return execAffectingOne(ctx, r.db, "failed to update resource total", `
		UPDATE resources SET total_quantity = $2, updated_at = $3
		WHERE id = $1`,
		res.ID(), res.TotalQuantity(), res.UpdatedAt(),
	)
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "failed to delete resource", `DELETE FROM resources WHERE id = $1`, id)
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("failed to find resource by ID", err)
	}
	return res, nil
}

func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrap("failed to lock resource", err)
	}
	return res, nil
}

func (r *ResourceRepository) List(ctx context.Context, page shared.Page) ([]*resource.Resource, error) {
	page = page.Normalize()
	rows, err := r.db.Query(ctx, `
		SELECT `+resourceColumns+` FROM resources
		ORDER BY name, id
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, wrap("failed to list resources", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*resource.Resource, error) {
		return scanResource(row)
	})
	if err != nil {
		return nil, wrap("failed to scan resources", err)
	}
	return list, nil
}

func (r *ResourceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM resources`).Scan(&n); err != nil {
		return 0, wrap("failed to count resources", err)
	}
	return n, nil
}

func scanResource(row rowScanner) (*resource.Resource, error) {
	var (
		id                   uuid.UUID
		name, kind, unit     string
		total                int64
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &kind, &unit, &total, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	details := resource.Details{Name: name, Kind: resource.Kind(kind), Unit: unit}
	return resource.ReconstructResource(id, details, total, createdAt, updatedAt), nil
}
