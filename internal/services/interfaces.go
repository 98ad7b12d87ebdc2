package services

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
)

// SessionRegistry creates and looks up authenticated sessions.
type SessionRegistry interface {
	Create(ctx context.Context, sessionID, userID, fingerprint, sourceAddress, userAgent string, ttl time.Duration) (*models.Session, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	All(ctx context.Context) ([]models.Session, error)
}

// AttemptLedger appends login attempts and answers windowed aggregates.
type AttemptLedger interface {
	Record(ctx context.Context, attempt models.LoginAttempt) (int64, error)
	Stats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error)
	CountRecentFailures(ctx context.Context, sourceAddress string, since time.Time) (int, error)
	All(ctx context.Context) ([]models.LoginAttempt, error)
}

// ReputationEngine maintains per-address trust records.
type ReputationEngine interface {
	Observe(ctx context.Context, address string, success bool) (*models.IPReputation, error)
	Lookup(ctx context.Context, address string) (*models.IPReputation, error)
	All(ctx context.Context) ([]models.IPReputation, error)
}

// EventRecorder appends behavioral event records.
type EventRecorder interface {
	RecordOne(ctx context.Context, record models.EventRecord) (int64, error)
	RecordBatch(ctx context.Context, records []models.EventRecord) ([]int64, error)
	All(ctx context.Context) ([]models.EventRecord, error)
}
