//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hostel-backoffice/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse(reservation.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(t *testing.T, roomID uuid.UUID, start, end string, status reservation.Status) *reservation.Reservation {
	t.Helper()
	dates, err := reservation.ParseDateRange(start, end)
	require.NoError(t, err)
	r, err := reservation.NewReservation(uuid.New(), roomID, dates, now)
	require.NoError(t, err)
	require.NoError(t, r.ChangeStatus(status, now))
	return r
}

func TestOverlapValidator(t *testing.T) {
	v := reservation.NewOverlapValidator()
	room101 := uuid.New()
	existing := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusConfirmed)

	cases := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{name: "starts on the other's checkout day", start: "2024-06-15", end: "2024-06-20", conflict: true},
		{name: "starts the day after checkout", start: "2024-06-16", end: "2024-06-20", conflict: false},
		{name: "ends on the other's arrival day", start: "2024-06-05", end: "2024-06-10", conflict: true},
		{name: "ends the day before arrival", start: "2024-06-05", end: "2024-06-09", conflict: false},
		{name: "starts inside", start: "2024-06-12", end: "2024-06-18", conflict: true},
		{name: "ends inside", start: "2024-06-08", end: "2024-06-11", conflict: true},
		{name: "fully contains", start: "2024-06-01", end: "2024-06-30", conflict: true},
		{name: "fully inside", start: "2024-06-11", end: "2024-06-13", conflict: true},
		{name: "identical", start: "2024-06-10", end: "2024-06-15", conflict: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := stay(t, room101, tc.start, tc.end, reservation.StatusPending)
			err := v.Validate(candidate, []*reservation.Reservation{existing}, "101")
			if !tc.conflict {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, reservation.ErrOverlapConflict)
			var overlap *reservation.OverlapError
			require.ErrorAs(t, err, &overlap)
			assert.Equal(t, "101", overlap.RoomNumber)
			assert.Equal(t, existing.ID(), overlap.ConflictingID)
		})
	}
}

func TestOverlapValidatorIgnoresWhatDoesNotHoldTheRoom(t *testing.T) {
	v := reservation.NewOverlapValidator()
	room101, room102 := uuid.New(), uuid.New()

	t.Run("cancelled reservations free the room", func(t *testing.T) {
		cancelled := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusCancelled)
		candidate := stay(t, room101, "2024-06-12", "2024-06-14", reservation.StatusPending)
		assert.NoError(t, v.Validate(candidate, []*reservation.Reservation{cancelled}, "101"))
	})

	t.Run("pending reservations hold the room", func(t *testing.T) {
		pending := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusPending)
		candidate := stay(t, room101, "2024-06-12", "2024-06-14", reservation.StatusPending)
		assert.ErrorIs(t, v.Validate(candidate, []*reservation.Reservation{pending}, "101"), reservation.ErrOverlapConflict)
	})

	t.Run("other rooms do not conflict", func(t *testing.T) {
		other := stay(t, room102, "2024-06-10", "2024-06-15", reservation.StatusConfirmed)
		candidate := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusPending)
		assert.NoError(t, v.Validate(candidate, []*reservation.Reservation{other}, "101"))
	})

	t.Run("an update is not checked against itself", func(t *testing.T) {
		self := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusConfirmed)
		dates, err := reservation.ParseDateRange("2024-06-12", "2024-06-18")
		require.NoError(t, err)
		require.NoError(t, self.Reschedule(room101, dates, now))
		assert.NoError(t, v.Validate(self, []*reservation.Reservation{self}, "101"))
	})

	t.Run("a cancelled candidate is only range-checked", func(t *testing.T) {
		active := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusConfirmed)
		candidate := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusCancelled)
		assert.NoError(t, v.Validate(candidate, []*reservation.Reservation{active}, "101"))
	})

	t.Run("nil entries are skipped", func(t *testing.T) {
		candidate := stay(t, room101, "2024-06-10", "2024-06-15", reservation.StatusPending)
		assert.NoError(t, v.Validate(candidate, []*reservation.Reservation{nil}, "101"))
	})
}

func TestDateRange(t *testing.T) {
	t.Run("same start and end is an invalid range", func(t *testing.T) {
		_, err := reservation.NewDateRange(day("2024-06-10"), day("2024-06-10"))
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("end before start is an invalid range", func(t *testing.T) {
		_, err := reservation.ParseDateRange("2024-06-10", "2024-06-09")
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("zero dates are an invalid range", func(t *testing.T) {
		_, err := reservation.NewDateRange(time.Time{}, day("2024-06-09"))
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("malformed text is an invalid range", func(t *testing.T) {
		_, err := reservation.ParseDateRange("10/06/2024", "2024-06-12")
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("time of day is dropped", func(t *testing.T) {
		r, err := reservation.NewDateRange(
			time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC),
			time.Date(2024, 6, 13, 0, 1, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, day("2024-06-10"), r.Start())
		assert.Equal(t, 3, r.Nights())
		assert.Equal(t, "2024-06-10/2024-06-13", r.String())
	})

	t.Run("overlap is symmetric", func(t *testing.T) {
		a, _ := reservation.ParseDateRange("2024-06-10", "2024-06-15")
		b, _ := reservation.ParseDateRange("2024-06-15", "2024-06-20")
		c, _ := reservation.ParseDateRange("2024-06-16", "2024-06-20")
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
		assert.False(t, a.Overlaps(c))
		assert.False(t, c.Overlaps(a))
	})
}

func TestReservationLifecycle(t *testing.T) {
	r := stay(t, uuid.New(), "2024-06-10", "2024-06-15", reservation.StatusPending)
	assert.True(t, r.IsActive())

	later := now.Add(time.Hour)
	require.NoError(t, r.ChangeStatus(reservation.StatusCancelled, later))
	assert.False(t, r.IsActive())
	assert.Equal(t, later, r.UpdatedAt())
	assert.Equal(t, now, r.CreatedAt())

	assert.ErrorIs(t, r.ChangeStatus("archived", later), reservation.ErrInvalidStatus)

	bad, _ := reservation.ParseDateRange("2024-06-20", "2024-06-10")
	assert.ErrorIs(t, r.Reschedule(r.RoomID(), bad, later), reservation.ErrInvalidRange)
}
