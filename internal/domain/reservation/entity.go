package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange  = errors.New("start date must be before end date")
	ErrInvalidStatus = errors.New("invalid reservation status")
)

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	roomID    uuid.UUID
	dates     DateRange
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(userID, roomID uuid.UUID, dates DateRange, now time.Time) (*Reservation, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}
	return &Reservation{
		id:        uuid.New(),
		userID:    userID,
		roomID:    roomID,
		dates:     dates,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, userID, roomID uuid.UUID,
	dates DateRange,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		dates:     dates,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Reschedule moves the stay; the caller must run OverlapValidator on the result before saving.
func (r *Reservation) Reschedule(roomID uuid.UUID, dates DateRange, now time.Time) error {
	if err := dates.Validate(); err != nil {
		return err
	}
	r.roomID = roomID
	r.dates = dates
	r.updatedAt = now
	return nil
}

func (r *Reservation) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) RoomID() uuid.UUID    { return r.roomID }
func (r *Reservation) Dates() DateRange     { return r.dates }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
