package commands

import (
	"context"
	"log/slog"
	"time"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/jwt"
	"hostel-backoffice/internal/pkg/password"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=auth.go -destination=../../testutil/mock/commands/auth.go -package=commandsmock

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	Token     string
	ExpiresIn time.Duration
}

type AuthCommands interface {
	// Register always creates a client; administrators are created through UserCommands.
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	hashCost   int
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		hashCost:   password.DefaultCost,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	return createUser(ctx, a.uow, a.clock, a.hashCost, in, user.RoleClient)
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := user.NewCredentials(in.Email, in.Password)
	if err != nil {
		// Malformed input gets the same answer as a wrong password.
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	var found *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, findErr := tx.Users().FindByEmail(ctx, credentials.Email().Value())
		if findErr != nil {
			return findErr
		}
		found = u
		return nil
	})
	if err != nil {
		if errs.Is(shared.Translate(err, shared.ErrUserNotFound), shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(found.PasswordHash(), credentials.Password().Value()); err != nil {
		slog.Info("login rejected", "user_id", found.ID())
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(found.ID(), found.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:    found.ID(),
		Role:      found.Role(),
		Token:     token,
		ExpiresIn: a.jwtService.TokenDuration(),
	}, nil
}

func createUser(ctx context.Context, uow shared.UnitOfWork, clk clock.Clock, cost int, in RegisterInput, role user.Role) (uuid.UUID, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	hash, err := password.HashWithCost(pw.Value(), cost)
	if errs.Is(err, password.ErrTooLong) {
		return uuid.Nil, errs.Invalid(err)
	}
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	u, err := user.NewUser(user.Profile{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}, email, hash, role, clk.Now())
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}

	err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return uuid.Nil, shared.Translate(err, shared.ErrUserNotFound)
	}
	return u.ID(), nil
}
