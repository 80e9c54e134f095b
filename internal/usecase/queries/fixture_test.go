//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/infra/memstore"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type world struct {
	ctx          context.Context
	store        *memstore.Store
	clock        *clock.MockClock
	admin        shared.Actor
	rooms        commands.RoomCommands
	reservations commands.ReservationCommands
	resources    commands.ResourceCommands
	users        commands.UserCommands
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		ctx:   context.Background(),
		store: memstore.New(),
		clock: clock.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
	}
	w.users = commands.NewUserCommands(w.store, w.clock)
	w.rooms = commands.NewRoomCommands(w.store)
	w.reservations = commands.NewReservationCommands(w.store, w.clock)
	w.resources = commands.NewResourceCommands(w.store, stock.NewLedger(stock.AllowNegative), w.clock)
	w.admin = w.actor(t, "admin_user", user.RoleAdministrator)
	return w
}

func (w *world) actor(t *testing.T, username string, role user.Role) shared.Actor {
	t.Helper()
	id, err := w.users.Create(w.ctx, commands.CreateUserInput{
		RegisterInput: commands.RegisterInput{Username: username, Email: username + "@example.com", Password: "password123"},
		Role:          string(role),
	})
	require.NoError(t, err)
	return shared.Actor{UserID: id, Role: role}
}

func (w *world) room(t *testing.T, number string) uuid.UUID {
	t.Helper()
	id, err := w.rooms.Create(w.ctx, commands.RoomInput{Number: number, Type: "single", Capacity: 1, Price: decimal.NewFromInt(50)})
	require.NoError(t, err)
	return id
}

func (w *world) book(t *testing.T, actor shared.Actor, roomID uuid.UUID, start, end string) uuid.UUID {
	t.Helper()
	id, err := w.reservations.Create(w.ctx, actor, commands.CreateReservationInput{
		RoomID:    roomID,
		StartDate: mustDay(start),
		EndDate:   mustDay(end),
	})
	require.NoError(t, err)
	return id
}

func mustDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func requireMarked(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errs.Is(err, target), "expected %q to carry %q", err, target)
}
