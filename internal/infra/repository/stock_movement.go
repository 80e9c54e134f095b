package repository

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const movementColumns = `id, resource_id, quantity, reason, recorded_at, quantity_before, quantity_after`

// StockMovementRepository has no update or delete: movements leave only through the resource cascade.
type StockMovementRepository struct {
	db DBTX
}

func NewStockMovementRepository(db DBTX) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

func (r *StockMovementRepository) Create(ctx context.Context, m *stock.Movement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID(), m.ResourceID(), m.Quantity(), m.Reason(), m.RecordedAt(), m.QuantityBefore(), m.QuantityAfter(),
	)
	if err != nil {
		return wrap("failed to create stock movement", err)
	}
	return nil
}

func (r *StockMovementRepository) ListByResource(ctx context.Context, resourceID uuid.UUID, cursor shared.MovementCursor) ([]*stock.Movement, error) {
	limit := cursor.Limit
	if limit <= 0 {
		limit = shared.DefaultListLimit
	}

	var (
		rows pgx.Rows
		err  error
	)
	if cursor.RecordedAt.IsZero() {
		rows, err = r.db.Query(ctx, `
			SELECT `+movementColumns+` FROM stock_movements
			WHERE resource_id = $1
			ORDER BY recorded_at DESC, id DESC
			LIMIT $2`, resourceID, limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+movementColumns+` FROM stock_movements
			WHERE resource_id = $1 AND (recorded_at, id) < ($2, $3)
			ORDER BY recorded_at DESC, id DESC
			LIMIT $4`, resourceID, cursor.RecordedAt, cursor.ID, limit)
	}
	if err != nil {
		return nil, wrap("failed to list stock movements", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*stock.Movement, error) {
		return scanMovement(row)
	})
	if err != nil {
		return nil, wrap("failed to scan stock movements", err)
	}
	return list, nil
}

func (r *StockMovementRepository) TotalsByResource(ctx context.Context, resourceID uuid.UUID) (shared.MovementTotals, error) {
	var t shared.MovementTotals
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)::bigint, count(*)
		FROM stock_movements WHERE resource_id = $1`, resourceID).Scan(&t.Sum, &t.Count)
	if err != nil {
		return shared.MovementTotals{}, wrap("failed to sum stock movements", err)
	}
	return t, nil
}

func scanMovement(row rowScanner) (*stock.Movement, error) {
	var (
		id, resourceID          uuid.UUID
		quantity, before, after int64
		reason                  string
		recordedAt              time.Time
	)
	if err := row.Scan(&id, &resourceID, &quantity, &reason, &recordedAt, &before, &after); err != nil {
		return nil, err
	}
	return stock.ReconstructMovement(id, resourceID, quantity, reason, recordedAt, before, after), nil
}
