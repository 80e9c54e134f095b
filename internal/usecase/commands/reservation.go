package commands

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/infra"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/commands/reservation.go -package=commandsmock

type CreateReservationInput struct {
	// UserID books on behalf of another user; administrators only. Nil books for the actor.
	UserID    *uuid.UUID
	RoomID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type UpdateReservationInput struct {
	// RoomID moves the stay to another room; nil keeps the current one.
	RoomID    *uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (uuid.UUID, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateReservationInput) error
	// ChangeStatus lets owners cancel; any other transition needs an administrator.
	ChangeStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, status string) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	validator reservation.OverlapValidator
	clock     clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		validator: reservation.NewOverlapValidator(),
		clock:     clk,
	}
}

func (r *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (uuid.UUID, error) {
	ownerID := actor.UserID
	if in.UserID != nil && *in.UserID != actor.UserID {
		if !actor.IsAdministrator() {
			return uuid.Nil, shared.ErrForbidden
		}
		ownerID = *in.UserID
	}

	dates, err := reservation.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}

	now := r.clock.Now()
	res, err := reservation.NewReservation(ownerID, in.RoomID, dates, now)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, lockErr := tx.Rooms().FindByIDForUpdate(ctx, in.RoomID)
		if lockErr != nil {
			return shared.Translate(lockErr, shared.ErrRoomNotFound)
		}
		if ownerID != actor.UserID {
			if _, findErr := tx.Users().FindByID(ctx, ownerID); findErr != nil {
				return shared.Translate(findErr, shared.ErrUserNotFound)
			}
		}

		if gateErr := r.gate(ctx, tx, res, rm); gateErr != nil {
			return gateErr
		}
		if createErr := tx.Reservations().Create(ctx, res); createErr != nil {
			return r.translateWrite(createErr, rm)
		}
		return enqueue(ctx, tx, shared.JobKindReservationCreated, shared.TopicReservations, newReservationEvent(res, rm), now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return res.ID(), nil
}

func (r *reservationCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateReservationInput) error {
	dates, err := reservation.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return errs.Invalid(err)
	}

	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, findErr := tx.Reservations().FindByID(ctx, id)
		if findErr != nil {
			return shared.Translate(findErr, shared.ErrReservationNotFound)
		}
		if !actor.CanAccess(current.UserID()) {
			return shared.ErrForbidden
		}

		roomID := current.RoomID()
		if in.RoomID != nil {
			roomID = *in.RoomID
		}
		res, rm, lockErr := r.lockAndReload(ctx, tx, id, roomID)
		if lockErr != nil {
			return lockErr
		}

		now := r.clock.Now()
		if rescheduleErr := res.Reschedule(roomID, dates, now); rescheduleErr != nil {
			return errs.Invalid(rescheduleErr)
		}
		if gateErr := r.gate(ctx, tx, res, rm); gateErr != nil {
			return gateErr
		}
		if updateErr := tx.Reservations().Update(ctx, res); updateErr != nil {
			return r.translateWrite(updateErr, rm)
		}
		return enqueue(ctx, tx, shared.JobKindReservationUpdated, shared.TopicReservations, newReservationEvent(res, rm), now)
	})
}

func (r *reservationCommandsImpl) ChangeStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, status string) error {
	next, err := reservation.NewStatus(status)
	if err != nil {
		return errs.Invalid(err)
	}
	if !actor.IsAdministrator() && next != reservation.StatusCancelled {
		return shared.ErrForbidden
	}

	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, findErr := tx.Reservations().FindByID(ctx, id)
		if findErr != nil {
			return shared.Translate(findErr, shared.ErrReservationNotFound)
		}
		if !actor.CanAccess(current.UserID()) {
			return shared.ErrForbidden
		}

		res, rm, lockErr := r.lockAndReload(ctx, tx, id, current.RoomID())
		if lockErr != nil {
			return lockErr
		}
		if res.Status() == next {
			return nil
		}

		now := r.clock.Now()
		if changeErr := res.ChangeStatus(next, now); changeErr != nil {
			return errs.Invalid(changeErr)
		}
		// Reactivating a cancelled stay must pass the same gate as a new booking.
		if gateErr := r.gate(ctx, tx, res, rm); gateErr != nil {
			return gateErr
		}
		if updateErr := tx.Reservations().Update(ctx, res); updateErr != nil {
			return r.translateWrite(updateErr, rm)
		}
		return enqueue(ctx, tx, shared.JobKindReservationStatusChanged, shared.TopicReservations, newReservationEvent(res, rm), now)
	})
}

func (r *reservationCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdministrator() {
		return shared.ErrForbidden
	}
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Delete(ctx, id)
	})
	return shared.Translate(err, shared.ErrReservationNotFound)
}

// lockAndReload takes the room lock first and reads the reservation again, so the state the gate
// sees cannot be older than the last committed writer for that room.
func (r *reservationCommandsImpl) lockAndReload(ctx context.Context, tx shared.Tx, id, roomID uuid.UUID) (*reservation.Reservation, *room.Room, error) {
	rm, err := tx.Rooms().FindByIDForUpdate(ctx, roomID)
	if err != nil {
		return nil, nil, shared.Translate(err, shared.ErrRoomNotFound)
	}
	res, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, nil, shared.Translate(err, shared.ErrReservationNotFound)
	}
	return res, rm, nil
}

func (r *reservationCommandsImpl) gate(ctx context.Context, tx shared.Tx, candidate *reservation.Reservation, rm *room.Room) error {
	if !candidate.IsActive() {
		return r.validator.Validate(candidate, nil, rm.Number())
	}
	existing, err := tx.Reservations().ListActiveByRoom(ctx, rm.ID())
	if err != nil {
		return err
	}
	if err := r.validator.Validate(candidate, existing, rm.Number()); err != nil {
		if errs.Is(err, reservation.ErrInvalidRange) {
			return errs.Invalid(err)
		}
		return err
	}
	return nil
}

// translateWrite maps the exclusion constraint backstop to the same error the validator returns.
func (r *reservationCommandsImpl) translateWrite(err error, rm *room.Room) error {
	if infra.IsKind(err, infra.KindExclusionViolated) {
		return &reservation.OverlapError{RoomNumber: rm.Number()}
	}
	return shared.Translate(err, shared.ErrReservationNotFound)
}

func newReservationEvent(res *reservation.Reservation, rm *room.Room) ReservationEvent {
	return ReservationEvent{
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		RoomID:        rm.ID(),
		RoomNumber:    rm.Number(),
		StartDate:     res.Dates().Start().Format(reservation.DateLayout),
		EndDate:       res.Dates().End().Format(reservation.DateLayout),
		Status:        string(res.Status()),
	}
}
