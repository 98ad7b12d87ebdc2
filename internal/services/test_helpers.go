package services

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
)

// MockSessionRegistry implements SessionRegistry for testing
type MockSessionRegistry struct {
	CreateFunc          func(ctx context.Context, sessionID, userID, fingerprint, sourceAddress, userAgent string, ttl time.Duration) (*models.Session, error)
	FindBySessionIDFunc func(ctx context.Context, sessionID string) (*models.Session, error)
	AllFunc             func(ctx context.Context) ([]models.Session, error)
}

func (m *MockSessionRegistry) Create(ctx context.Context, sessionID, userID, fingerprint, sourceAddress, userAgent string, ttl time.Duration) (*models.Session, error) {
	if m.CreateFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateFunc(ctx, sessionID, userID, fingerprint, sourceAddress, userAgent, ttl)
}

func (m *MockSessionRegistry) FindBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	if m.FindBySessionIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.FindBySessionIDFunc(ctx, sessionID)
}

func (m *MockSessionRegistry) All(ctx context.Context) ([]models.Session, error) {
	if m.AllFunc == nil {
		return nil, nil
	}
	return m.AllFunc(ctx)
}

// MockAttemptLedger implements AttemptLedger for testing
type MockAttemptLedger struct {
	RecordFunc              func(ctx context.Context, attempt models.LoginAttempt) (int64, error)
	StatsFunc               func(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error)
	CountRecentFailuresFunc func(ctx context.Context, sourceAddress string, since time.Time) (int, error)
	AllFunc                 func(ctx context.Context) ([]models.LoginAttempt, error)
}

func (m *MockAttemptLedger) Record(ctx context.Context, attempt models.LoginAttempt) (int64, error) {
	if m.RecordFunc == nil {
		return 1, nil
	}
	return m.RecordFunc(ctx, attempt)
}

func (m *MockAttemptLedger) Stats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
	if m.StatsFunc == nil {
		return map[string]models.AttemptBucket{}, nil
	}
	return m.StatsFunc(ctx, timeRange)
}

func (m *MockAttemptLedger) CountRecentFailures(ctx context.Context, sourceAddress string, since time.Time) (int, error) {
	if m.CountRecentFailuresFunc == nil {
		return 0, nil
	}
	return m.CountRecentFailuresFunc(ctx, sourceAddress, since)
}

func (m *MockAttemptLedger) All(ctx context.Context) ([]models.LoginAttempt, error) {
	if m.AllFunc == nil {
		return nil, nil
	}
	return m.AllFunc(ctx)
}

// MockReputationEngine implements ReputationEngine for testing
type MockReputationEngine struct {
	ObserveFunc func(ctx context.Context, address string, success bool) (*models.IPReputation, error)
	LookupFunc  func(ctx context.Context, address string) (*models.IPReputation, error)
	AllFunc     func(ctx context.Context) ([]models.IPReputation, error)
}

func (m *MockReputationEngine) Observe(ctx context.Context, address string, success bool) (*models.IPReputation, error) {
	if m.ObserveFunc == nil {
		return models.NewIPReputation(address, success, time.Now()), nil
	}
	return m.ObserveFunc(ctx, address, success)
}

func (m *MockReputationEngine) Lookup(ctx context.Context, address string) (*models.IPReputation, error) {
	if m.LookupFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.LookupFunc(ctx, address)
}

func (m *MockReputationEngine) All(ctx context.Context) ([]models.IPReputation, error) {
	if m.AllFunc == nil {
		return nil, nil
	}
	return m.AllFunc(ctx)
}

// MockEventRecorder implements EventRecorder for testing
type MockEventRecorder struct {
	RecordOneFunc   func(ctx context.Context, record models.EventRecord) (int64, error)
	RecordBatchFunc func(ctx context.Context, records []models.EventRecord) ([]int64, error)
	AllFunc         func(ctx context.Context) ([]models.EventRecord, error)
}

func (m *MockEventRecorder) RecordOne(ctx context.Context, record models.EventRecord) (int64, error) {
	if m.RecordOneFunc == nil {
		return 1, nil
	}
	return m.RecordOneFunc(ctx, record)
}

func (m *MockEventRecorder) RecordBatch(ctx context.Context, records []models.EventRecord) ([]int64, error) {
	if m.RecordBatchFunc == nil {
		ids := make([]int64, len(records))
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		return ids, nil
	}
	return m.RecordBatchFunc(ctx, records)
}

func (m *MockEventRecorder) All(ctx context.Context) ([]models.EventRecord, error) {
	if m.AllFunc == nil {
		return nil, nil
	}
	return m.AllFunc(ctx)
}
