package request

import (
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

// Dates are calendar days in YYYY-MM-DD; the end date is the checkout day.
type CreateReservationRequest struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	RoomID    uuid.UUID  `json:"room_id" binding:"required"`
	StartDate string     `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string     `json:"end_date" binding:"required,datetime=2006-01-02"`
}

func (r *CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

type UpdateReservationRequest struct {
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	StartDate string     `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string     `json:"end_date" binding:"required,datetime=2006-01-02"`
}

func (r *UpdateReservationRequest) ToInput() (commands.UpdateReservationInput, error) {
	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return commands.UpdateReservationInput{}, err
	}
	return commands.UpdateReservationInput{RoomID: r.RoomID, StartDate: start, EndDate: end}, nil
}

type ChangeReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

func parseDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(reservation.DateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Wrap(err, "invalid start_date")
	}
	end, err := time.Parse(reservation.DateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Wrap(err, "invalid end_date")
	}
	return start, end, nil
}
