//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

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

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
	users commands.UserCommands
	rooms commands.RoomCommands
	admin shared.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		store: memstore.New(),
		clock: clock.NewMockClock(baseTime),
	}
	f.users = commands.NewUserCommands(f.store, f.clock)
	f.rooms = commands.NewRoomCommands(f.store)
	f.admin = shared.Actor{UserID: f.createUser(t, "admin_user", user.RoleAdministrator), Role: user.RoleAdministrator}
	return f
}

func (f *fixture) createUser(t *testing.T, username string, role user.Role) uuid.UUID {
	t.Helper()
	id, err := f.users.Create(f.ctx, commands.CreateUserInput{
		RegisterInput: commands.RegisterInput{
			Username: username,
			Email:    username + "@example.com",
			Password: "password123",
		},
		Role: string(role),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) client(t *testing.T, username string) shared.Actor {
	t.Helper()
	return shared.Actor{UserID: f.createUser(t, username, user.RoleClient), Role: user.RoleClient}
}

func (f *fixture) createRoom(t *testing.T, number string) uuid.UUID {
	t.Helper()
	id, err := f.rooms.Create(f.ctx, commands.RoomInput{
		Number:   number,
		Type:     "double",
		Capacity: 2,
		Price:    decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	return id
}

// drainOutbox claims every due job; claimed jobs are returned by kind.
func (f *fixture) drainOutbox(t *testing.T) map[string]int {
	t.Helper()
	kinds := map[string]int{}
	err := f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimDue(ctx, f.clock.Now().Add(time.Hour), 1000)
		if err != nil {
			return err
		}
		for _, j := range jobs {
			kinds[j.Kind]++
			if err := tx.Notifications().MarkSent(ctx, j.ID, f.clock.Now()); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return kinds
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// assertMarked checks sentinels attached with errs.Mark, which the std errors.Is cannot see.
func assertMarked(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errs.Is(err, target), "expected %q to carry %q", err, target)
}
