package repositories

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRepository_RecordAssignsSequentialIDs(t *testing.T) {
	repo := NewAttemptRepository(newTestStore(t))
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		id, err := repo.Record(ctx, models.LoginAttempt{
			Username:      "admin",
			SourceAddress: "203.0.113.10",
			AttemptStatus: models.AttemptStatusFailure,
		})
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestAttemptRepository_ConcurrentRecordsYieldDistinctContiguousIDs(t *testing.T) {
	repo := NewAttemptRepository(newTestStore(t))
	ctx := context.Background()

	const n = 30
	ids := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(slot int) {
			defer wg.Done()
			id, err := repo.Record(ctx, models.LoginAttempt{
				Username:      "admin",
				SourceAddress: "203.0.113.10",
				AttemptStatus: models.AttemptStatusSuccess,
			})
			assert.NoError(t, err)
			ids[slot] = id
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		require.Equal(t, int64(i+1), id, "ids must be distinct and contiguous from 1")
	}

	attempts, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, attempts, n)
}

func TestAttemptRepository_StatsBucketsByOutcome(t *testing.T) {
	repo := NewAttemptRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	seed := []models.LoginAttempt{
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusSuccess, Timestamp: now.Add(-10 * time.Minute)},
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-20 * time.Minute)},
		{Username: "root", SourceAddress: "198.51.100.7", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-30 * time.Minute)},
		{Username: "root", SourceAddress: "198.51.100.7", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-40 * time.Minute)},
		// Outside the 1h window but inside 24h
		{Username: "guest", SourceAddress: "192.0.2.1", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-3 * time.Hour)},
	}
	for _, a := range seed {
		_, err := repo.Record(ctx, a)
		require.NoError(t, err)
	}

	hour, err := repo.Stats(ctx, models.TimeRangeHour)
	require.NoError(t, err)

	assert.Equal(t, 1, hour[models.AttemptStatusSuccess].Count)
	assert.Equal(t, 1, hour[models.AttemptStatusSuccess].UniqueSourceAddresses)
	assert.Equal(t, 1, hour[models.AttemptStatusSuccess].UniqueUsernames)

	assert.Equal(t, 3, hour[models.AttemptStatusFailure].Count)
	assert.Equal(t, 2, hour[models.AttemptStatusFailure].UniqueSourceAddresses)
	assert.Equal(t, 2, hour[models.AttemptStatusFailure].UniqueUsernames)

	// An address that both succeeded and failed counts once in each bucket
	assert.Equal(t, 1, hour[models.AttemptStatusSuccess].UniqueSourceAddresses)
}

func TestAttemptRepository_StatsHourIsSubsetOfDay(t *testing.T) {
	repo := NewAttemptRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	for _, age := range []time.Duration{10 * time.Minute, 50 * time.Minute, 2 * time.Hour, 20 * time.Hour} {
		_, err := repo.Record(ctx, models.LoginAttempt{
			Username:      "admin",
			SourceAddress: "203.0.113.10",
			AttemptStatus: models.AttemptStatusFailure,
			Timestamp:     now.Add(-age),
		})
		require.NoError(t, err)
	}

	hour, err := repo.Stats(ctx, models.TimeRangeHour)
	require.NoError(t, err)
	day, err := repo.Stats(ctx, models.TimeRangeDay)
	require.NoError(t, err)

	for _, status := range []string{models.AttemptStatusSuccess, models.AttemptStatusFailure} {
		assert.LessOrEqual(t, hour[status].Count, day[status].Count)
		assert.LessOrEqual(t, hour[status].UniqueSourceAddresses, day[status].UniqueSourceAddresses)
		assert.LessOrEqual(t, hour[status].UniqueUsernames, day[status].UniqueUsernames)
	}
	assert.Equal(t, 2, hour[models.AttemptStatusFailure].Count)
	assert.Equal(t, 4, day[models.AttemptStatusFailure].Count)
}

func TestAttemptRepository_CountRecentFailures(t *testing.T) {
	repo := NewAttemptRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	seed := []models.LoginAttempt{
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-5 * time.Minute)},
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-10 * time.Minute)},
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusSuccess, Timestamp: now.Add(-6 * time.Minute)},
		{Username: "admin", SourceAddress: "198.51.100.7", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-7 * time.Minute)},
		{Username: "admin", SourceAddress: "203.0.113.10", AttemptStatus: models.AttemptStatusFailure, Timestamp: now.Add(-2 * time.Hour)},
	}
	for _, a := range seed {
		_, err := repo.Record(ctx, a)
		require.NoError(t, err)
	}

	count, err := repo.CountRecentFailures(ctx, "203.0.113.10", now.Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
