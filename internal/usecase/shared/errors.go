package shared

import (
	"hostel-backoffice/internal/infra"
	"hostel-backoffice/internal/pkg/errs"
)

var (
	ErrNotFound      = errs.New("not found")
	ErrAlreadyExists = errs.New("already exists")
	ErrForbidden     = errs.New("forbidden")

	ErrUserNotFound        = errs.New("user not found")
	ErrRoomNotFound        = errs.New("room not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrResourceNotFound    = errs.New("resource not found")
	ErrWeatherNotFound     = errs.New("weather record not found")
)

// Translate marks repository failures with the sentinels handlers switch on.
// notFound names the entity the caller was looking for.
func Translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(errs.Mark(err, notFound), ErrNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrAlreadyExists)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(errs.Mark(err, notFound), ErrNotFound)
	case infra.IsKind(err, infra.KindCheckViolated):
		return errs.Invalid(err)
	}
	return err
}

// NotFound builds a not-found error for a row that exists but must not be disclosed to the caller.
func NotFound(sentinel error) error {
	return errs.Mark(sentinel, ErrNotFound)
}
