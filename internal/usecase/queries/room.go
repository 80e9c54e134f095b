package queries

import (
	"context"

	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter shared.RoomFilter) ([]RoomView, error)
}

type roomQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRoomQueries(uow shared.UnitOfWork) RoomQueries {
	return &roomQueriesImpl{uow: uow}
}

func (q *roomQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	var view RoomView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = toRoomView(rm)
		return err
	})
	if err != nil {
		return nil, shared.Translate(err, shared.ErrRoomNotFound)
	}
	return &view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, filter shared.RoomFilter) ([]RoomView, error) {
	var views []RoomView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rooms, err := tx.Rooms().List(ctx, filter)
		if err != nil {
			return err
		}
		views, err = mapAll(rooms, toRoomView)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
