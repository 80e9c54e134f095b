package queries

import (
	"context"

	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type WeatherQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*WeatherView, error)
	List(ctx context.Context, filter shared.WeatherFilter) ([]WeatherView, error)
}

type weatherQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewWeatherQueries(uow shared.UnitOfWork) WeatherQueries {
	return &weatherQueriesImpl{uow: uow}
}

func (q *weatherQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*WeatherView, error) {
	var view WeatherView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Weather().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = toWeatherView(rec)
		return err
	})
	if err != nil {
		return nil, shared.Translate(err, shared.ErrWeatherNotFound)
	}
	return &view, nil
}

func (q *weatherQueriesImpl) List(ctx context.Context, filter shared.WeatherFilter) ([]WeatherView, error) {
	var views []WeatherView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Weather().List(ctx, filter)
		if err != nil {
			return err
		}
		views, err = mapAll(list, toWeatherView)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
