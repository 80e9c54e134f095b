//go:build unit

package commands_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/ptr"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationFixture struct {
	*fixture
	cmds    commands.ReservationCommands
	q       queries.ReservationQueries
	room101 uuid.UUID
}

func newReservationFixture(t *testing.T) *reservationFixture {
	f := newFixture(t)
	return &reservationFixture{
		fixture: f,
		cmds:    commands.NewReservationCommands(f.store, f.clock),
		q:       queries.NewReservationQueries(f.store),
		room101: f.createRoom(t, "101"),
	}
}

func (f *reservationFixture) book(actor shared.Actor, roomID uuid.UUID, start, end string) (uuid.UUID, error) {
	return f.cmds.Create(f.ctx, actor, commands.CreateReservationInput{RoomID: roomID, StartDate: day(start), EndDate: day(end)})
}

func TestReservationCreate(t *testing.T) {
	t.Run("touching a confirmed stay is rejected, the next day is accepted", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")

		first, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		require.NoError(t, f.cmds.ChangeStatus(f.ctx, f.admin, first, "confirmed"))

		_, err = f.book(guest, f.room101, "2024-06-15", "2024-06-20")
		require.ErrorIs(t, err, reservation.ErrOverlapConflict)
		var overlap *reservation.OverlapError
		require.True(t, errs.As(err, &overlap))
		assert.Equal(t, "101", overlap.RoomNumber)
		assert.Equal(t, first, overlap.ConflictingID)

		_, err = f.book(guest, f.room101, "2024-06-16", "2024-06-20")
		assert.NoError(t, err)
	})

	t.Run("start equal to end is an invalid range whatever the room holds", func(t *testing.T) {
		f := newReservationFixture(t)
		_, err := f.book(f.client(t, "cliente1"), f.room101, "2024-06-10", "2024-06-10")
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("concurrent overlapping bookings: exactly one wins", func(t *testing.T) {
		f := newReservationFixture(t)
		const attempts = 16
		guests := make([]shared.Actor, attempts)
		for i := range guests {
			guests[i] = f.client(t, "guest"+string(rune('a'+i)))
		}

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			accepted  int
			conflicts int
		)
		for i := range attempts {
			wg.Add(1)
			go func(actor shared.Actor, shift int) {
				defer wg.Done()
				// Different but overlapping ranges: all contain 2024-06-12.
				start := day("2024-06-10").AddDate(0, 0, shift%3)
				_, err := f.cmds.Create(f.ctx, actor, commands.CreateReservationInput{
					RoomID: f.room101, StartDate: start, EndDate: day("2024-06-13"),
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					accepted++
				case errs.Is(err, reservation.ErrOverlapConflict):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(guests[i], i)
		}
		wg.Wait()

		assert.Equal(t, 1, accepted)
		assert.Equal(t, attempts-1, conflicts)

		list, err := f.q.List(f.ctx, f.admin, queries.ReservationListFilter{RoomID: &f.room101})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.Total)
	})

	t.Run("other rooms are independent", func(t *testing.T) {
		f := newReservationFixture(t)
		room102 := f.createRoom(t, "102")
		guest := f.client(t, "cliente1")

		_, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		_, err = f.book(guest, room102, "2024-06-10", "2024-06-15")
		assert.NoError(t, err)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newReservationFixture(t)
		_, err := f.book(f.client(t, "cliente1"), uuid.New(), "2024-06-10", "2024-06-15")
		assertMarked(t, err, shared.ErrRoomNotFound)
		assertMarked(t, err, shared.ErrNotFound)
	})

	t.Run("only administrators book on behalf of someone else", func(t *testing.T) {
		f := newReservationFixture(t)
		alice, bob := f.client(t, "alice"), f.client(t, "bob")

		_, err := f.cmds.Create(f.ctx, alice, commands.CreateReservationInput{
			UserID: ptr.To(bob.UserID), RoomID: f.room101, StartDate: day("2024-06-10"), EndDate: day("2024-06-12"),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)

		id, err := f.cmds.Create(f.ctx, f.admin, commands.CreateReservationInput{
			UserID: ptr.To(bob.UserID), RoomID: f.room101, StartDate: day("2024-06-10"), EndDate: day("2024-06-12"),
		})
		require.NoError(t, err)
		view, err := f.q.Get(f.ctx, bob, id)
		require.NoError(t, err)
		assert.Equal(t, bob.UserID, view.UserID)
		assert.Equal(t, "pending", view.Status)

		_, err = f.cmds.Create(f.ctx, f.admin, commands.CreateReservationInput{
			UserID: ptr.To(uuid.New()), RoomID: f.room101, StartDate: day("2024-07-10"), EndDate: day("2024-07-12"),
		})
		assertMarked(t, err, shared.ErrUserNotFound)
	})

	t.Run("a created reservation queues a notification", func(t *testing.T) {
		f := newReservationFixture(t)
		_, err := f.book(f.client(t, "cliente1"), f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{shared.JobKindReservationCreated: 1}, f.drainOutbox(t))
	})

	t.Run("a rejected booking queues nothing", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		_, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		f.drainOutbox(t)

		_, err = f.book(guest, f.room101, "2024-06-12", "2024-06-14")
		require.Error(t, err)
		assert.Empty(t, f.drainOutbox(t))
	})
}

func TestReservationUpdate(t *testing.T) {
	t.Run("the gate runs again on the edited values", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		_, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		second, err := f.book(guest, f.room101, "2024-06-20", "2024-06-25")
		require.NoError(t, err)

		err = f.cmds.Update(f.ctx, guest, second, commands.UpdateReservationInput{StartDate: day("2024-06-14"), EndDate: day("2024-06-18")})
		require.ErrorIs(t, err, reservation.ErrOverlapConflict)

		view, err := f.q.Get(f.ctx, guest, second)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-20", view.StartDate, "rejected update must leave the stored dates alone")
	})

	t.Run("shrinking or shifting inside its own slot is allowed", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		require.NoError(t, f.cmds.Update(f.ctx, guest, id, commands.UpdateReservationInput{StartDate: day("2024-06-11"), EndDate: day("2024-06-16")}))
		view, err := f.q.Get(f.ctx, guest, id)
		require.NoError(t, err)
		assert.Equal(t, 5, view.Nights)
	})

	t.Run("moving to another room checks that room", func(t *testing.T) {
		f := newReservationFixture(t)
		room102 := f.createRoom(t, "102")
		guest := f.client(t, "cliente1")
		_, err := f.book(guest, room102, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		err = f.cmds.Update(f.ctx, guest, id, commands.UpdateReservationInput{RoomID: &room102, StartDate: day("2024-06-10"), EndDate: day("2024-06-15")})
		var overlap *reservation.OverlapError
		require.True(t, errs.As(err, &overlap))
		assert.Equal(t, "102", overlap.RoomNumber)
	})

	t.Run("clients cannot touch other clients' reservations", func(t *testing.T) {
		f := newReservationFixture(t)
		alice, bob := f.client(t, "alice"), f.client(t, "bob")
		id, err := f.book(alice, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		err = f.cmds.Update(f.ctx, bob, id, commands.UpdateReservationInput{StartDate: day("2024-06-11"), EndDate: day("2024-06-15")})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.ErrorIs(t, f.cmds.ChangeStatus(f.ctx, bob, id, "cancelled"), shared.ErrForbidden)
	})
}

func TestReservationChangeStatus(t *testing.T) {
	t.Run("cancelling frees the slot", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		require.NoError(t, f.cmds.ChangeStatus(f.ctx, guest, id, "cancelled"))
		_, err = f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		assert.NoError(t, err)
	})

	t.Run("reactivating a cancelled stay passes the gate again", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		require.NoError(t, f.cmds.ChangeStatus(f.ctx, guest, id, "cancelled"))
		_, err = f.book(guest, f.room101, "2024-06-12", "2024-06-18")
		require.NoError(t, err)

		err = f.cmds.ChangeStatus(f.ctx, f.admin, id, "confirmed")
		assert.ErrorIs(t, err, reservation.ErrOverlapConflict)
	})

	t.Run("clients may cancel but not confirm", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		assert.ErrorIs(t, f.cmds.ChangeStatus(f.ctx, guest, id, "confirmed"), shared.ErrForbidden)
		assert.True(t, errs.Is(f.cmds.ChangeStatus(f.ctx, guest, id, "archived"), errs.ErrValidation))
	})

	t.Run("setting the current status again is a no-op", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)
		f.drainOutbox(t)

		require.NoError(t, f.cmds.ChangeStatus(f.ctx, f.admin, id, "pending"))
		assert.Empty(t, f.drainOutbox(t))
	})
}

func TestReservationDelete(t *testing.T) {
	f := newReservationFixture(t)
	guest := f.client(t, "cliente1")
	id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
	require.NoError(t, err)

	assert.ErrorIs(t, f.cmds.Delete(f.ctx, guest, id), shared.ErrForbidden)
	require.NoError(t, f.cmds.Delete(f.ctx, f.admin, id))
	assertMarked(t, f.cmds.Delete(f.ctx, f.admin, id), shared.ErrReservationNotFound)

	_, err = f.q.Get(f.ctx, f.admin, id)
	assertMarked(t, err, shared.ErrReservationNotFound)
}

func TestCascadeDeletes(t *testing.T) {
	t.Run("deleting a room drops its reservations", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		require.NoError(t, f.rooms.Delete(f.ctx, f.room101))
		_, err = f.q.Get(f.ctx, f.admin, id)
		assertMarked(t, err, shared.ErrReservationNotFound)
	})

	t.Run("deleting a user drops their reservations", func(t *testing.T) {
		f := newReservationFixture(t)
		guest := f.client(t, "cliente1")
		id, err := f.book(guest, f.room101, "2024-06-10", "2024-06-15")
		require.NoError(t, err)

		require.NoError(t, f.users.Delete(f.ctx, f.admin, guest.UserID))
		_, err = f.q.Get(f.ctx, f.admin, id)
		assertMarked(t, err, shared.ErrReservationNotFound)
	})
}

func TestNoActiveOverlapAfterRandomSequence(t *testing.T) {
	f := newReservationFixture(t)
	room102 := f.createRoom(t, "102")
	rooms := []uuid.UUID{f.room101, room102}
	guests := []shared.Actor{f.client(t, "guest_a"), f.client(t, "guest_b"), f.admin}
	statuses := []string{"pending", "confirmed", "cancelled"}
	horizon := day("2024-07-01")

	rng := rand.New(rand.NewPCG(2024, 6))
	stay := func() (time.Time, time.Time) {
		start := horizon.AddDate(0, 0, rng.IntN(60))
		return start, start.AddDate(0, 0, 1+rng.IntN(6))
	}

	var booked []uuid.UUID
	accepted, rejected := 0, 0
	for i := 0; i < 600; i++ {
		var err error
		switch op := rng.IntN(10); {
		case op < 5 || len(booked) == 0:
			start, end := stay()
			var id uuid.UUID
			id, err = f.cmds.Create(f.ctx, guests[rng.IntN(len(guests))], commands.CreateReservationInput{
				RoomID: rooms[rng.IntN(len(rooms))], StartDate: start, EndDate: end,
			})
			if err == nil {
				booked = append(booked, id)
			}
		case op < 8:
			start, end := stay()
			in := commands.UpdateReservationInput{StartDate: start, EndDate: end}
			if rng.IntN(2) == 0 {
				in.RoomID = ptr.To(rooms[rng.IntN(len(rooms))])
			}
			err = f.cmds.Update(f.ctx, f.admin, booked[rng.IntN(len(booked))], in)
		default:
			err = f.cmds.ChangeStatus(f.ctx, f.admin, booked[rng.IntN(len(booked))], statuses[rng.IntN(len(statuses))])
		}

		if err != nil {
			require.Truef(t, errs.Is(err, reservation.ErrOverlapConflict), "op %d: unexpected error %v", i, err)
			rejected++
			continue
		}
		accepted++
	}
	require.NotZero(t, accepted)
	require.NotZero(t, rejected, "the sequence should have produced conflicts")

	for _, roomID := range rooms {
		var active []*reservation.Reservation
		require.NoError(t, f.store.WithinReadOnly(f.ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			active, err = tx.Reservations().ListActiveByRoom(ctx, roomID)
			return err
		}))
		for i, a := range active {
			require.True(t, a.IsActive())
			for _, b := range active[i+1:] {
				disjoint := a.Dates().End().Before(b.Dates().Start()) || b.Dates().End().Before(a.Dates().Start())
				assert.Truef(t, disjoint, "room %s: %s overlaps %s", roomID, a.Dates(), b.Dates())
			}
		}
	}
}
