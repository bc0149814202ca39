package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/coffeechain-sync/internal/adapters/redis_adapter"
	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/test/helpers"
)

func newStore(t *testing.T) (*redis_a.SyncStateStore, *helpers.TestRedis) {
	t.Helper()

	r := helpers.SetupTestRedis(t)
	return redis_a.NewSyncStateStore(r.Client, helpers.TestLogger()), r
}

func TestSyncStateStore_AcquireLock(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setup      func(*helpers.TestRedis)
		runID      string
		expectedOK bool
	}{
		{
			name:       "acquires_free_lock",
			setup:      func(r *helpers.TestRedis) {},
			runID:      "run-1",
			expectedOK: true,
		},
		{
			name: "refuses_held_lock",
			setup: func(r *helpers.TestRedis) {
				require.NoError(t, r.Server.Set(redis_a.LockKey, "run-0"))
			},
			runID:      "run-1",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, r := newStore(t)
			tt.setup(r)

			ok, err := store.AcquireLock(ctx, tt.runID, time.Minute)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOK, ok)

			if tt.expectedOK {
				holder, err := r.Server.Get(redis_a.LockKey)
				require.NoError(t, err)
				assert.Equal(t, tt.runID, holder)
				assert.Equal(t, time.Minute, r.Server.TTL(redis_a.LockKey))
			}
		})
	}
}

func TestSyncStateStore_LockExpires(t *testing.T) {
	ctx := context.Background()
	store, r := newStore(t)

	ok, err := store.AcquireLock(ctx, "crashed-run", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	r.Server.FastForward(2 * time.Minute)

	ok, err = store.AcquireLock(ctx, "next-run", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSyncStateStore_ReleaseLock(t *testing.T) {
	ctx := context.Background()

	t.Run("owner_releases", func(t *testing.T) {
		store, r := newStore(t)

		ok, err := store.AcquireLock(ctx, "run-1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.ReleaseLock(ctx, "run-1"))
		assert.False(t, r.Server.Exists(redis_a.LockKey))
	})

	t.Run("other_run_lock_is_kept", func(t *testing.T) {
		store, r := newStore(t)
		require.NoError(t, r.Server.Set(redis_a.LockKey, "run-2"))

		require.NoError(t, store.ReleaseLock(ctx, "run-1"))

		holder, err := r.Server.Get(redis_a.LockKey)
		require.NoError(t, err)
		assert.Equal(t, "run-2", holder)
	})

	t.Run("redis_down", func(t *testing.T) {
		store, r := newStore(t)
		r.Server.Close()

		err := store.ReleaseLock(ctx, "run-1")
		require.Error(t, err)

		var stateErr *redis_a.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "release", stateErr.Op)
	})
}

func TestSyncStateStore_Reports(t *testing.T) {
	ctx := context.Background()
	store, r := newStore(t)

	_, err := store.LastReport(ctx)
	assert.ErrorIs(t, err, redis_a.ErrReportNotFound)

	started := time.Date(2025, 3, 4, 2, 0, 0, 0, time.UTC)
	report := &domain.SyncReport{
		RunID:      "run-1",
		Status:     domain.SyncStatusSucceeded,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Duration:   "3s",
		Fetched:    3,
		Duplicates: 1,
		Upserted:   2,
	}

	require.NoError(t, store.SaveReport(ctx, report))
	assert.True(t, r.Server.Exists("sync:last_report"))

	got, err := store.LastReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	report.RunID = "run-2"
	report.Status = domain.SyncStatusFailed
	report.Error = "failed to fetch inventory: API request failed with status 500"
	require.NoError(t, store.SaveReport(ctx, report))

	got, err = store.LastReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
	assert.Equal(t, domain.SyncStatusFailed, got.Status)
	assert.Equal(t, report.Error, got.Error)
}

func TestSyncStateStore_Ping(t *testing.T) {
	store, r := newStore(t)
	require.NoError(t, store.Ping(context.Background()))

	r.Server.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "sync:lock", redis_a.LockKey)
	assert.Equal(t, "sync:last_report", redis_a.LastReportKey)
	assert.Equal(t, "sync:a:b", redis_a.BuildKey(redis_a.PrefixSync, "a", "b"))
}
