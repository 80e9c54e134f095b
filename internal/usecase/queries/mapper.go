package queries

import (
	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/pkg/errs"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Entities expose state through getters only; copier reads them by method name. Value objects
// need explicit converters.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).StringFixed(room.PriceScale), nil
			},
		},
		{
			SrcType: user.Email{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(user.Email).Value(), nil
			},
		},
	},
}

func project[T any](from any) (T, error) {
	var to T
	if err := copier.CopyWithOption(&to, from, copyOption); err != nil {
		return to, errs.Wrap(err, "failed to map read model")
	}
	return to, nil
}

func toUserView(u *user.User) (UserView, error) {
	v, err := project[UserView](u)
	if err != nil {
		return v, err
	}
	p := u.Profile()
	v.FirstName, v.LastName, v.Phone = p.FirstName, p.LastName, p.Phone
	return v, nil
}

func toRoomView(r *room.Room) (RoomView, error) {
	return project[RoomView](r)
}

func toReservationView(r *reservation.Reservation, roomNumber, username string) (ReservationView, error) {
	v, err := project[ReservationView](r)
	if err != nil {
		return v, err
	}
	v.StartDate = r.Dates().Start().Format(reservation.DateLayout)
	v.EndDate = r.Dates().End().Format(reservation.DateLayout)
	v.Nights = r.Dates().Nights()
	v.RoomNumber = roomNumber
	v.Username = username
	return v, nil
}

func toWeatherView(w *weather.Record) (WeatherView, error) {
	v, err := project[WeatherView](w)
	if err != nil {
		return v, err
	}
	v.Date = w.Date().Format(reservation.DateLayout)
	v.Temperature = w.Temperature().StringFixed(weather.TemperatureScale)
	return v, nil
}

func toContactView(m *contact.Message) (ContactView, error) {
	return project[ContactView](m)
}

func mapAll[E any, V any](items []E, conv func(E) (V, error)) ([]V, error) {
	out := make([]V, 0, len(items))
	for _, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
