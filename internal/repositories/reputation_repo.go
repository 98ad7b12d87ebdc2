package repositories

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/storage"
)

const reputationCollection = "ip_reputation"

// BlockPolicy decides is_blocked transitions for reputation records. The
// engine invokes the policy after every observation but never transitions
// the flag itself.
type BlockPolicy interface {
	Evaluate(record *models.IPReputation)
}

// NoopBlockPolicy leaves every record untouched. The default wiring; no
// auto-block threshold is defined here.
type NoopBlockPolicy struct{}

func (NoopBlockPolicy) Evaluate(*models.IPReputation) {}

// ReputationRepository maintains the per-source-address trust records.
type ReputationRepository struct {
	collection *storage.Collection[models.IPReputation]
	policy     BlockPolicy
}

// NewReputationRepository creates a new ReputationRepository. A nil policy
// falls back to NoopBlockPolicy.
func NewReputationRepository(store *storage.Store, policy BlockPolicy) *ReputationRepository {
	if policy == nil {
		policy = NoopBlockPolicy{}
	}
	return &ReputationRepository{
		collection: storage.NewCollection[models.IPReputation](store, reputationCollection),
		policy:     policy,
	}
}

// Observe folds a login outcome into the address's record, creating it
// lazily on the first observation. The whole read-modify-write runs inside
// the collection's critical section.
func (r *ReputationRepository) Observe(ctx context.Context, address string, success bool) (*models.IPReputation, error) {
	var observed models.IPReputation
	if _, err := r.collection.Update(ctx, func(records []models.IPReputation) ([]models.IPReputation, error) {
		now := time.Now().UTC()
		for i := range records {
			if records[i].Address == address {
				records[i].ApplyOutcome(success, now)
				r.policy.Evaluate(&records[i])
				observed = records[i]
				return records, nil
			}
		}
		rec := models.NewIPReputation(address, success, now)
		r.policy.Evaluate(rec)
		observed = *rec
		return append(records, *rec), nil
	}); err != nil {
		return nil, err
	}
	return &observed, nil
}

// Lookup returns the record for an address, or ErrNotFound if it has never
// been observed.
func (r *ReputationRepository) Lookup(ctx context.Context, address string) (*models.IPReputation, error) {
	records, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Address == address {
			return &records[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// All returns every reputation record in insertion order.
func (r *ReputationRepository) All(ctx context.Context) ([]models.IPReputation, error) {
	return r.collection.Load(ctx)
}
