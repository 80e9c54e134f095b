package commands

import (
	"context"

	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RoomInput struct {
	Number   string
	Type     string
	Capacity int
	Price    decimal.Decimal
	// Status may be empty: available on create, unchanged on update.
	Status string
}

func (in RoomInput) attributes() (room.Attributes, error) {
	kind, err := room.NewType(in.Type)
	if err != nil {
		return room.Attributes{}, err
	}
	var status room.Status
	if in.Status != "" {
		if status, err = room.NewStatus(in.Status); err != nil {
			return room.Attributes{}, err
		}
	}
	return room.Attributes{
		Number:   in.Number,
		Type:     kind,
		Capacity: in.Capacity,
		Price:    in.Price,
		Status:   status,
	}, nil
}

type RoomCommands interface {
	Create(ctx context.Context, in RoomInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in RoomInput) error
	// Delete cascades to every reservation of the room.
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewRoomCommands(uow shared.UnitOfWork) RoomCommands {
	return &roomCommandsImpl{uow: uow}
}

func (r *roomCommandsImpl) Create(ctx context.Context, in RoomInput) (uuid.UUID, error) {
	attrs, err := in.attributes()
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	rm, err := room.NewRoom(attrs)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, rm)
	})
	if err != nil {
		return uuid.Nil, shared.Translate(err, shared.ErrRoomNotFound)
	}
	return rm.ID(), nil
}

func (r *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, in RoomInput) error {
	attrs, err := in.attributes()
	if err != nil {
		return errs.Invalid(err)
	}
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, findErr := tx.Rooms().FindByIDForUpdate(ctx, id)
		if findErr != nil {
			return findErr
		}
		if updateErr := rm.Update(attrs); updateErr != nil {
			return errs.Invalid(updateErr)
		}
		return tx.Rooms().Update(ctx, rm)
	})
	return shared.Translate(err, shared.ErrRoomNotFound)
}

func (r *roomCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Delete(ctx, id)
	})
	return shared.Translate(err, shared.ErrRoomNotFound)
}
