package api

import (
	"net/http"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/handler/httperr"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type overlapDetail struct {
	RoomNumber             string     `json:"room_number"`
	ConflictingReservation *uuid.UUID `json:"conflicting_reservation_id,omitempty"`
}

type reasonDetail struct {
	Reason string `json:"reason"`
}

var notFoundMessages = []struct {
	sentinel error
	msg      string
}{
	{shared.ErrUserNotFound, "User not found"},
	{shared.ErrRoomNotFound, "Room not found"},
	{shared.ErrReservationNotFound, "Reservation not found"},
	{shared.ErrResourceNotFound, "Resource not found"},
	{shared.ErrWeatherNotFound, "Weather record not found"},
}

// abortWithUsecaseError is the single place usecase errors become HTTP statuses.
func abortWithUsecaseError(c *gin.Context, err error) {
	var overlap *reservation.OverlapError
	switch {
	case errs.As(err, &overlap):
		detail := overlapDetail{RoomNumber: overlap.RoomNumber}
		if overlap.ConflictingID != uuid.Nil {
			id := overlap.ConflictingID
			detail.ConflictingReservation = &id
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation overlaps an existing reservation", detail)
	case errs.Is(err, stock.ErrInsufficientStock):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Insufficient stock", reasonDetail{Reason: errs.Cause(err).Error()})
	case errs.Is(err, commands.ErrInvalidCredentials):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
	case errs.Is(err, shared.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", reasonDetail{Reason: errs.Cause(err).Error()})
	case errs.Is(err, shared.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, notFoundMessage(err), nil)
	case errs.Is(err, shared.ErrAlreadyExists):
		httperr.AbortWithError(c, http.StatusConflict, err, "Already exists", nil)
	case errs.Is(err, errs.ErrValidation),
		errs.Is(err, reservation.ErrInvalidRange),
		errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", reasonDetail{Reason: errs.Cause(err).Error()})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

func notFoundMessage(err error) string {
	for _, m := range notFoundMessages {
		if errs.Is(err, m.sentinel) {
			return m.msg
		}
	}
	return "Not found"
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, reasonDetail{Reason: err.Error()})
}

func abortUnauthenticated(c *gin.Context) {
	httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
}
