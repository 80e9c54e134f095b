package reservation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrOverlapConflict = errors.New("reservation overlaps an active reservation")

type OverlapError struct {
	RoomNumber    string
	ConflictingID uuid.UUID
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("room %s already has an active reservation for these dates", e.RoomNumber)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlapConflict
}

// OverlapValidator is the write gate for reservations. It is stateless; callers load the room's
// reservations inside the same transaction that holds the room lock and persists the candidate.
type OverlapValidator struct{}

func NewOverlapValidator() OverlapValidator {
	return OverlapValidator{}
}

// Validate checks candidate against existing, which may contain the candidate itself (skipped by ID),
// other rooms' reservations (skipped) and cancelled ones (skipped).
func (OverlapValidator) Validate(candidate *Reservation, existing []*Reservation, roomNumber string) error {
	if err := candidate.Dates().Validate(); err != nil {
		return err
	}
	if !candidate.IsActive() {
		return nil
	}

	for _, other := range existing {
		if other == nil || other.ID() == candidate.ID() {
			continue
		}
		if other.RoomID() != candidate.RoomID() || !other.IsActive() {
			continue
		}
		if candidate.Dates().Overlaps(other.Dates()) {
			return &OverlapError{RoomNumber: roomNumber, ConflictingID: other.ID()}
		}
	}
	return nil
}
