package queries

import (
	"context"

	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../testutil/mock/queries/user.go -package=queriesmock

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	List(ctx context.Context, page shared.Page) ([]UserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	var view UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		view, err = toUserView(u)
		return err
	})
	if err != nil {
		return nil, shared.Translate(err, shared.ErrUserNotFound)
	}
	return &view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, page shared.Page) ([]UserView, error) {
	var views []UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		users, err := tx.Users().List(ctx, page)
		if err != nil {
			return err
		}
		views, err = mapAll(users, toUserView)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
