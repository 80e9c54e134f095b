package usecase

import (
	"context"

	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/jwt"
	"hostel-backoffice/internal/usecase/shared"
)

//go:generate mockgen -source=token_validator.go -destination=../testutil/mock/usecase/token_validator.go -package=usecasemock

var ErrTokenValidation = errs.New("token validation failed")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	uow        shared.UnitOfWork
}

func NewTokenValidator(jwtService *jwt.Service, uow shared.UnitOfWork) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		uow:        uow,
	}
}

// ValidateToken resolves the role from the store rather than the claim, so a deleted user or a
// changed role takes effect before the token expires.
func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, errs.Mark(err, ErrTokenValidation)
	}

	var actor shared.Actor
	err = t.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, findErr := tx.Users().FindByID(ctx, claims.UserID)
		if findErr != nil {
			return findErr
		}
		actor = shared.Actor{UserID: u.ID(), Role: u.Role()}
		return nil
	})
	if err != nil {
		return shared.Actor{}, errs.Mark(shared.Translate(err, shared.ErrUserNotFound), ErrTokenValidation)
	}
	return actor, nil
}
