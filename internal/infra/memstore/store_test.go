//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/infra"
	"hostel-backoffice/internal/infra/memstore"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T, number string) *room.Room {
	t.Helper()
	rm, err := room.NewRoom(room.Attributes{Number: number, Type: room.TypeSingle, Capacity: 1, Price: decimal.NewFromInt(50)})
	require.NoError(t, err)
	return rm
}

func countRooms(t *testing.T, s *memstore.Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Rooms().Count(ctx)
		return err
	}))
	return n
}

func TestWithin(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Rooms().Create(ctx, newRoom(t, "101"))
		}))
		assert.Equal(t, int64(1), countRooms(t, s))
	})

	t.Run("every write is discarded when fn fails", func(t *testing.T) {
		s := memstore.New()
		boom := errors.New("boom")

		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Rooms().Create(ctx, newRoom(t, "101")); err != nil {
				return err
			}
			if err := tx.Rooms().Create(ctx, newRoom(t, "102")); err != nil {
				return err
			}
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Zero(t, countRooms(t, s))
	})

	t.Run("cancelled context never runs fn", func(t *testing.T) {
		s := memstore.New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ran := false
		err := s.Within(cctx, func(context.Context, shared.Tx) error {
			ran = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
	})

	t.Run("room numbers stay unique", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Rooms().Create(ctx, newRoom(t, "101"))
		}))
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Rooms().Create(ctx, newRoom(t, "101"))
		})
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestWithinReadOnly(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, newRoom(t, "101"))
	})
	assert.ErrorIs(t, err, memstore.ErrReadOnly)

	err = s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, claimErr := tx.Notifications().ClaimDue(ctx, time.Now(), 10)
		return claimErr
	})
	assert.ErrorIs(t, err, memstore.ErrReadOnly)
	assert.Zero(t, countRooms(t, s))
}

func TestNotificationClaimOrder(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	var later, sooner, future shared.NotificationJob
	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if later, err = shared.NewNotificationJob(shared.JobKindReservationCreated, shared.TopicReservations, map[string]int{"n": 1}, base.Add(time.Minute)); err != nil {
			return err
		}
		if sooner, err = shared.NewNotificationJob(shared.JobKindStockMovementRecorded, shared.TopicStock, map[string]int{"n": 2}, base); err != nil {
			return err
		}
		if future, err = shared.NewNotificationJob(shared.JobKindReservationCreated, shared.TopicReservations, map[string]int{"n": 3}, base.Add(time.Hour)); err != nil {
			return err
		}
		for _, j := range []shared.NotificationJob{later, sooner, future} {
			if err := tx.Notifications().CreateJob(ctx, j); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimDue(ctx, base.Add(2*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, sooner.ID, jobs[0].ID)
		assert.Equal(t, later.ID, jobs[1].ID)

		require.NoError(t, tx.Notifications().MarkSent(ctx, sooner.ID, base))
		return tx.Notifications().MarkRetry(ctx, later.ID, "broker down", base.Add(30*time.Minute))
	}))

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimDue(ctx, base.Add(2*time.Minute), 10)
		require.NoError(t, err)
		assert.Empty(t, jobs)

		jobs, err = tx.Notifications().ClaimDue(ctx, base.Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, later.ID, jobs[0].ID)
		assert.Equal(t, 1, jobs[0].Attempts)
		require.NotNil(t, jobs[0].LastError)
		assert.Equal(t, "broker down", *jobs[0].LastError)
		return nil
	}))
}
