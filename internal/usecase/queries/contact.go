package queries

import (
	"context"

	"hostel-backoffice/internal/usecase/shared"
)

type ContactQueries interface {
	List(ctx context.Context, page shared.Page) ([]ContactView, error)
}

type contactQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewContactQueries(uow shared.UnitOfWork) ContactQueries {
	return &contactQueriesImpl{uow: uow}
}

func (q *contactQueriesImpl) List(ctx context.Context, page shared.Page) ([]ContactView, error) {
	var views []ContactView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Contacts().List(ctx, page)
		if err != nil {
			return err
		}
		views, err = mapAll(list, toContactView)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
