package request

import (
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/ptr"
	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func (q PageQuery) ToPage() shared.Page {
	return shared.Page{Limit: q.Limit, Offset: q.Offset}.Normalize()
}

type RoomListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=available occupied maintenance"`
	Type   string `form:"type" binding:"omitempty,oneof=single double suite"`
}

func (q RoomListQuery) ToFilter() shared.RoomFilter {
	f := shared.RoomFilter{Page: q.ToPage()}
	if q.Status != "" {
		f.Status = ptr.To(room.Status(q.Status))
	}
	if q.Type != "" {
		f.Type = ptr.To(room.Type(q.Type))
	}
	return f
}

type ReservationListQuery struct {
	PageQuery
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

func (q ReservationListQuery) ToFilter() queries.ReservationListFilter {
	f := queries.ReservationListFilter{Page: q.ToPage()}
	if id, err := uuid.Parse(q.UserID); err == nil {
		f.UserID = &id
	}
	if id, err := uuid.Parse(q.RoomID); err == nil {
		f.RoomID = &id
	}
	if q.Status != "" {
		f.Status = ptr.To(reservation.Status(q.Status))
	}
	return f
}

// WeatherListQuery bounds are inclusive calendar days.
type WeatherListQuery struct {
	PageQuery
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

func (q WeatherListQuery) ToFilter() (shared.WeatherFilter, error) {
	f := shared.WeatherFilter{Page: q.ToPage()}
	if q.From != "" {
		from, err := time.Parse(reservation.DateLayout, q.From)
		if err != nil {
			return shared.WeatherFilter{}, errs.Wrap(err, "invalid from")
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(reservation.DateLayout, q.To)
		if err != nil {
			return shared.WeatherFilter{}, errs.Wrap(err, "invalid to")
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return shared.WeatherFilter{}, errs.New("to must not be before from")
	}
	return f, nil
}

type MovementListQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q MovementListQuery) After() *queries.Cursor {
	if q.Cursor == "" {
		return nil
	}
	return &queries.Cursor{After: q.Cursor}
}
