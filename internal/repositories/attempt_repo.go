package repositories

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/storage"
)

const attemptsCollection = "login_attempts"

// AttemptRepository is the append-only ledger of login attempts.
type AttemptRepository struct {
	collection *storage.Collection[models.LoginAttempt]
}

// NewAttemptRepository creates a new AttemptRepository
func NewAttemptRepository(store *storage.Store) *AttemptRepository {
	return &AttemptRepository{
		collection: storage.NewCollection[models.LoginAttempt](store, attemptsCollection),
	}
}

// Record assigns the next sequence number and appends the attempt. The id
// assignment happens inside the collection's critical section, so concurrent
// attempts never collide.
func (r *AttemptRepository) Record(ctx context.Context, attempt models.LoginAttempt) (int64, error) {
	var id int64
	if _, err := r.collection.Update(ctx, func(attempts []models.LoginAttempt) ([]models.LoginAttempt, error) {
		id = nextAttemptID(attempts)
		attempt.AttemptID = id
		if attempt.Timestamp.IsZero() {
			attempt.Timestamp = time.Now().UTC()
		}
		return append(attempts, attempt), nil
	}); err != nil {
		return 0, err
	}
	return id, nil
}

// Stats buckets attempts inside the lookback window by outcome. Attempts
// timestamped strictly after now minus the window are included; unique
// counts are computed independently per bucket.
func (r *AttemptRepository) Stats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
	attempts, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		count     int
		addresses map[string]struct{}
		usernames map[string]struct{}
	}
	buckets := map[string]*bucket{
		models.AttemptStatusSuccess: {addresses: map[string]struct{}{}, usernames: map[string]struct{}{}},
		models.AttemptStatusFailure: {addresses: map[string]struct{}{}, usernames: map[string]struct{}{}},
	}

	cutoff := time.Now().Add(-timeRange.Duration())
	for i := range attempts {
		a := &attempts[i]
		if !a.Timestamp.After(cutoff) {
			continue
		}
		b, ok := buckets[a.AttemptStatus]
		if !ok {
			continue
		}
		b.count++
		b.addresses[a.SourceAddress] = struct{}{}
		b.usernames[a.Username] = struct{}{}
	}

	stats := make(map[string]models.AttemptBucket, len(buckets))
	for status, b := range buckets {
		stats[status] = models.AttemptBucket{
			Count:                 b.count,
			UniqueSourceAddresses: len(b.addresses),
			UniqueUsernames:       len(b.usernames),
		}
	}
	return stats, nil
}

// CountRecentFailures returns the number of failed attempts from an address
// since the given time. Feeds the advisory remaining-attempts hint.
func (r *AttemptRepository) CountRecentFailures(ctx context.Context, sourceAddress string, since time.Time) (int, error) {
	attempts, err := r.collection.Load(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range attempts {
		a := &attempts[i]
		if a.SourceAddress == sourceAddress && a.AttemptStatus == models.AttemptStatusFailure && a.Timestamp.After(since) {
			count++
		}
	}
	return count, nil
}

// All returns every attempt record in insertion order.
func (r *AttemptRepository) All(ctx context.Context) ([]models.LoginAttempt, error) {
	return r.collection.Load(ctx)
}

func nextAttemptID(attempts []models.LoginAttempt) int64 {
	var max int64
	for i := range attempts {
		if attempts[i].AttemptID > max {
			max = attempts[i].AttemptID
		}
	}
	return max + 1
}
