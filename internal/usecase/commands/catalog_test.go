//go:build unit

package commands_test

import (
	"testing"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomNumberIsUnique(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "101")
	other := f.createRoom(t, "102")

	t.Run("create with a taken number", func(t *testing.T) {
		_, err := f.rooms.Create(f.ctx, commands.RoomInput{Number: " 101 ", Type: "single", Capacity: 1, Price: decimal.NewFromInt(40)})
		assertMarked(t, err, shared.ErrAlreadyExists)
	})

	t.Run("renumbering onto a taken number", func(t *testing.T) {
		err := f.rooms.Update(f.ctx, other, commands.RoomInput{Number: "101", Type: "double", Capacity: 2, Price: decimal.NewFromInt(80)})
		assertMarked(t, err, shared.ErrAlreadyExists)

		view, err := queries.NewRoomQueries(f.store).Get(f.ctx, other)
		require.NoError(t, err)
		assert.Equal(t, "102", view.Number)
	})

	t.Run("keeping its own number is fine", func(t *testing.T) {
		err := f.rooms.Update(f.ctx, other, commands.RoomInput{Number: "102", Type: "suite", Capacity: 3, Price: decimal.NewFromInt(150), Status: "maintenance"})
		require.NoError(t, err)
	})

	t.Run("invalid attributes are validation errors", func(t *testing.T) {
		_, err := f.rooms.Create(f.ctx, commands.RoomInput{Number: "201", Type: "single", Capacity: 0, Price: decimal.NewFromInt(40)})
		assertMarked(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)

		_, err = f.rooms.Create(f.ctx, commands.RoomInput{Number: "201", Type: "dorm", Capacity: 4, Price: decimal.NewFromInt(20)})
		assertMarked(t, err, errs.ErrValidation)
	})
}

func TestWeatherDateIsUnique(t *testing.T) {
	f := newFixture(t)
	cmds := commands.NewWeatherCommands(f.store)
	record := func(date string, rain int) commands.WeatherInput {
		return commands.WeatherInput{Date: day(date), Temperature: decimal.RequireFromString("18.5"), RainProbability: rain}
	}

	_, err := cmds.Create(f.ctx, record("2024-06-01", 10))
	require.NoError(t, err)
	second, err := cmds.Create(f.ctx, record("2024-06-02", 30))
	require.NoError(t, err)

	t.Run("second record for the same day", func(t *testing.T) {
		_, err := cmds.Create(f.ctx, record("2024-06-01", 90))
		assertMarked(t, err, shared.ErrAlreadyExists)
	})

	t.Run("moving a record onto a recorded day", func(t *testing.T) {
		err := cmds.Update(f.ctx, second, record("2024-06-01", 30))
		assertMarked(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rain probability out of range", func(t *testing.T) {
		_, err := cmds.Create(f.ctx, record("2024-06-05", 101))
		assertMarked(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, weather.ErrInvalidRainProbability)
	})
}

func TestContactSubmit(t *testing.T) {
	f := newFixture(t)
	cmds := commands.NewContactCommands(f.store, f.clock)

	id, err := cmds.Submit(f.ctx, commands.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "Late check-in?"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = cmds.Submit(f.ctx, commands.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "   "})
	assertMarked(t, err, errs.ErrValidation)
	assert.ErrorIs(t, err, contact.ErrEmptyMessage)

	_, err = cmds.Submit(f.ctx, commands.ContactInput{Name: "Ana", Email: "not-an-email", Message: "hi"})
	assertMarked(t, err, errs.ErrValidation)
}
