package queries

import (
	"context"

	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../testutil/mock/queries/resource.go -package=queriesmock

type ResourceQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, page shared.Page) ([]ResourceView, error)
	// Movements pages the history newest first; next is nil on the last page.
	Movements(ctx context.Context, resourceID uuid.UUID, after *Cursor, limit int) ([]MovementView, *Cursor, error)
	Reconcile(ctx context.Context, resourceID uuid.UUID) (*ReconciliationView, error)
}

type resourceQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewResourceQueries(uow shared.UnitOfWork) ResourceQueries {
	return &resourceQueriesImpl{uow: uow}
}

func (q *resourceQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	var view ResourceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = project[ResourceView](res)
		return err
	})
	if err != nil {
		return nil, shared.Translate(err, shared.ErrResourceNotFound)
	}
	return &view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, page shared.Page) ([]ResourceView, error) {
	var views []ResourceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Resources().List(ctx, page)
		if err != nil {
			return err
		}
		views, err = mapAll(list, func(r *resource.Resource) (ResourceView, error) {
			return project[ResourceView](r)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *resourceQueriesImpl) Movements(ctx context.Context, resourceID uuid.UUID, after *Cursor, limit int) ([]MovementView, *Cursor, error) {
	cursor := shared.MovementCursor{Limit: ValidateLimit(limit)}
	if after != nil && after.After != "" {
		at, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Invalid(err)
		}
		cursor.RecordedAt, cursor.ID = at, id
	}

	var views []MovementView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().FindByID(ctx, resourceID); err != nil {
			return shared.Translate(err, shared.ErrResourceNotFound)
		}
		// One extra row tells whether another page exists.
		peek := cursor
		peek.Limit++
		list, err := tx.StockMovements().ListByResource(ctx, resourceID, peek)
		if err != nil {
			return err
		}
		views, err = mapAll(list, func(m *stock.Movement) (MovementView, error) {
			v, err := project[MovementView](m)
			if err != nil {
				return v, err
			}
			v.Direction = DirectionOut
			if m.IsInbound() {
				v.Direction = DirectionIn
			}
			return v, nil
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if len(views) <= cursor.Limit {
		return views, nil, nil
	}
	views = views[:cursor.Limit]
	last := views[len(views)-1]
	return views, &Cursor{After: EncodeAfterCursor(last.RecordedAt, last.ID)}, nil
}

// Reconcile reads total and movement sum in one snapshot, so a concurrent movement can never show
// up as drift.
func (q *resourceQueriesImpl) Reconcile(ctx context.Context, resourceID uuid.UUID) (*ReconciliationView, error) {
	var view ReconciliationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, resourceID)
		if err != nil {
			return shared.Translate(err, shared.ErrResourceNotFound)
		}
		totals, err := tx.StockMovements().TotalsByResource(ctx, resourceID)
		if err != nil {
			return err
		}
		drift := res.TotalQuantity() - totals.Sum
		view = ReconciliationView{
			ResourceID:    res.ID(),
			TotalQuantity: res.TotalQuantity(),
			MovementSum:   totals.Sum,
			MovementCount: totals.Count,
			Drift:         drift,
			Consistent:    drift == 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
