package queries

import (
	"context"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/queries/reservation.go -package=queriesmock

type ReservationListFilter struct {
	UserID *uuid.UUID
	RoomID *uuid.UUID
	Status *reservation.Status
	Page   shared.Page
}

type ReservationQueries interface {
	// Get hides other users' reservations from clients behind ErrReservationNotFound.
	Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	// List scopes clients to their own reservations whatever filter.UserID says.
	List(ctx context.Context, actor shared.Actor, filter ReservationListFilter) (*ListResult[ReservationView], error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	var view ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.Translate(err, shared.ErrReservationNotFound)
		}
		if !actor.CanAccess(res.UserID()) {
			return shared.NotFound(shared.ErrReservationNotFound)
		}
		views, err := q.decorate(ctx, tx, []*reservation.Reservation{res})
		if err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, actor shared.Actor, filter ReservationListFilter) (*ListResult[ReservationView], error) {
	repoFilter := shared.ReservationFilter{
		UserID: filter.UserID,
		RoomID: filter.RoomID,
		Status: filter.Status,
		Page:   filter.Page.Normalize(),
	}
	if !actor.IsAdministrator() {
		repoFilter.UserID = &actor.UserID
	}

	var result ListResult[ReservationView]
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Reservations().List(ctx, repoFilter)
		if err != nil {
			return err
		}
		total, err := tx.Reservations().Count(ctx, repoFilter)
		if err != nil {
			return err
		}
		views, err := q.decorate(ctx, tx, list)
		if err != nil {
			return err
		}
		result = ListResult[ReservationView]{Items: views, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// decorate adds room numbers and usernames, loading each referenced row once.
func (q *reservationQueriesImpl) decorate(ctx context.Context, tx shared.Tx, list []*reservation.Reservation) ([]ReservationView, error) {
	rooms := map[uuid.UUID]string{}
	users := map[uuid.UUID]string{}
	views := make([]ReservationView, 0, len(list))
	for _, res := range list {
		number, ok := rooms[res.RoomID()]
		if !ok {
			rm, err := tx.Rooms().FindByID(ctx, res.RoomID())
			if err != nil {
				return nil, shared.Translate(err, shared.ErrRoomNotFound)
			}
			number = rm.Number()
			rooms[res.RoomID()] = number
		}
		username, ok := users[res.UserID()]
		if !ok {
			u, err := tx.Users().FindByID(ctx, res.UserID())
			if err != nil {
				return nil, shared.Translate(err, shared.ErrUserNotFound)
			}
			username = u.Username()
			users[res.UserID()] = username
		}
		v, err := toReservationView(res, number, username)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
