package commands

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WeatherInput struct {
	Date            time.Time
	Temperature     decimal.Decimal
	RainProbability int
	Comment         *string
}

func (in WeatherInput) observation() weather.Observation {
	return weather.Observation{
		Date:            in.Date,
		Temperature:     in.Temperature,
		RainProbability: in.RainProbability,
		Comment:         in.Comment,
	}
}

type WeatherCommands interface {
	Create(ctx context.Context, in WeatherInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in WeatherInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type weatherCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewWeatherCommands(uow shared.UnitOfWork) WeatherCommands {
	return &weatherCommandsImpl{uow: uow}
}

func (w *weatherCommandsImpl) Create(ctx context.Context, in WeatherInput) (uuid.UUID, error) {
	rec, err := weather.NewRecord(in.observation())
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Weather().Create(ctx, rec)
	})
	if err != nil {
		return uuid.Nil, shared.Translate(err, shared.ErrWeatherNotFound)
	}
	return rec.ID(), nil
}

func (w *weatherCommandsImpl) Update(ctx context.Context, id uuid.UUID, in WeatherInput) error {
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, findErr := tx.Weather().FindByID(ctx, id)
		if findErr != nil {
			return findErr
		}
		if updateErr := rec.Update(in.observation()); updateErr != nil {
			return errs.Invalid(updateErr)
		}
		return tx.Weather().Update(ctx, rec)
	})
	return shared.Translate(err, shared.ErrWeatherNotFound)
}

func (w *weatherCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Weather().Delete(ctx, id)
	})
	return shared.Translate(err, shared.ErrWeatherNotFound)
}
