package commands

import (
	"context"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

type ContactCommands interface {
	Submit(ctx context.Context, in ContactInput) (uuid.UUID, error)
}

type contactCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewContactCommands(uow shared.UnitOfWork, clk clock.Clock) ContactCommands {
	return &contactCommandsImpl{uow: uow, clock: clk}
}

func (c *contactCommandsImpl) Submit(ctx context.Context, in ContactInput) (uuid.UUID, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	msg, err := contact.NewMessage(in.Name, email, in.Message, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Contacts().Create(ctx, msg)
	})
	if err != nil {
		return uuid.Nil, shared.Translate(err, shared.ErrNotFound)
	}
	return msg.ID(), nil
}
