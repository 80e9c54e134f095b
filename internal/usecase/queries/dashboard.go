package queries

import (
	"context"
	"log/slog"

	"hostel-backoffice/internal/usecase/shared"
)

// DashboardCache holds the last computed counts for a short TTL. A miss returns (nil, nil).
type DashboardCache interface {
	Get(ctx context.Context) (*DashboardView, error)
	Set(ctx context.Context, view DashboardView) error
}

type DashboardQueries interface {
	Get(ctx context.Context) (*DashboardView, error)
}

type dashboardQueriesImpl struct {
	uow   shared.UnitOfWork
	cache DashboardCache
}

func NewDashboardQueries(uow shared.UnitOfWork, cache DashboardCache) DashboardQueries {
	return &dashboardQueriesImpl{uow: uow, cache: cache}
}

// Get serves from cache when it can; cache failures only cost a store round trip.
func (q *dashboardQueriesImpl) Get(ctx context.Context) (*DashboardView, error) {
	cached, err := q.cache.Get(ctx)
	if err != nil {
		slog.Warn("dashboard cache read failed", "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	var view DashboardView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var countErr error
		if view.Rooms, countErr = tx.Rooms().Count(ctx); countErr != nil {
			return countErr
		}
		if view.Reservations, countErr = tx.Reservations().Count(ctx, shared.ReservationFilter{}); countErr != nil {
			return countErr
		}
		view.Resources, countErr = tx.Resources().Count(ctx)
		return countErr
	})
	if err != nil {
		return nil, err
	}

	if err := q.cache.Set(ctx, view); err != nil {
		slog.Warn("dashboard cache write failed", "error", err.Error())
	}
	return &view, nil
}

// NoopDashboardCache is used when no cache is configured.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(context.Context) (*DashboardView, error) { return nil, nil }
func (NoopDashboardCache) Set(context.Context, DashboardView) error    { return nil }
