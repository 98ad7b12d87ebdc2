package repositories

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/storage"
)

const eventsCollection = "events"

// EventRepository is the append-only ledger of behavioral event records.
type EventRepository struct {
	collection *storage.Collection[models.EventRecord]
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(store *storage.Store) *EventRepository {
	return &EventRepository{
		collection: storage.NewCollection[models.EventRecord](store, eventsCollection),
	}
}

// RecordOne appends a single event and returns its assigned log id.
func (r *EventRepository) RecordOne(ctx context.Context, record models.EventRecord) (int64, error) {
	ids, err := r.RecordBatch(ctx, []models.EventRecord{record})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// RecordBatch appends all records in one storage update, assigning distinct
// contiguous log ids from the ledger's current maximum. Persistence is
// all-or-nothing for the batch.
func (r *EventRepository) RecordBatch(ctx context.Context, records []models.EventRecord) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(records))
	if _, err := r.collection.Update(ctx, func(events []models.EventRecord) ([]models.EventRecord, error) {
		next := nextLogID(events)
		now := time.Now().UTC()
		for i := range records {
			records[i].LogID = next
			ids[i] = next
			next++
			if records[i].Timestamp.IsZero() {
				records[i].Timestamp = now
			}
			events = append(events, records[i])
		}
		return events, nil
	}); err != nil {
		return nil, err
	}
	return ids, nil
}

// All returns every event record in insertion order.
func (r *EventRepository) All(ctx context.Context) ([]models.EventRecord, error) {
	return r.collection.Load(ctx)
}

func nextLogID(events []models.EventRecord) int64 {
	var max int64
	for i := range events {
		if events[i].LogID > max {
			max = events[i].LogID
		}
	}
	return max + 1
}
