package commands

import (
	"context"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/password"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateUserInput struct {
	RegisterInput
	Role string
}

type UserCommands interface {
	Create(ctx context.Context, in CreateUserInput) (uuid.UUID, error)
	// Delete cascades to the user's reservations.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow      shared.UnitOfWork
	hashCost int
	clock    clock.Clock
}

func NewUserCommands(uow shared.UnitOfWork, clk clock.Clock) UserCommands {
	return &userCommandsImpl{uow: uow, hashCost: password.DefaultCost, clock: clk}
}

func (u *userCommandsImpl) Create(ctx context.Context, in CreateUserInput) (uuid.UUID, error) {
	role, err := user.NewRole(in.Role)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	return createUser(ctx, u.uow, u.clock, u.hashCost, in.RegisterInput, role)
}

func (u *userCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdministrator() {
		return shared.ErrForbidden
	}
	if actor.UserID == id {
		return errs.Mark(ErrSelfDeletion, shared.ErrForbidden)
	}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Delete(ctx, id)
	})
	return shared.Translate(err, shared.ErrUserNotFound)
}
