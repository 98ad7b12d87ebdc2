package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jordanhw/honeywatch/internal/geo"
	"github.com/jordanhw/honeywatch/internal/models"
)

// ReputationReport is a reputation record optionally enriched with the
// pluggable geolocation capability's result.
type ReputationReport struct {
	models.IPReputation
	Location *geo.Location `json:"location,omitempty"`
}

// ExportDump is the full research/debug dump of all four collections.
type ExportDump struct {
	Sessions      []models.Session      `json:"sessions"`
	LoginAttempts []models.LoginAttempt `json:"login_attempts"`
	Events        []models.EventRecord  `json:"events"`
	IPReputation  []models.IPReputation `json:"ip_reputation"`
}

// AnalyticsService answers time-windowed analytical queries over the
// ledgers. It only ever reads.
type AnalyticsService struct {
	sessions   SessionRegistry
	attempts   AttemptLedger
	reputation ReputationEngine
	events     EventRecorder
	resolver   geo.Resolver
	logger     *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService. A nil resolver falls
// back to geo.NoopResolver.
func NewAnalyticsService(
	sessions SessionRegistry,
	attempts AttemptLedger,
	reputation ReputationEngine,
	events EventRecorder,
	resolver geo.Resolver,
	logger *slog.Logger,
) *AnalyticsService {
	if resolver == nil {
		resolver = geo.NoopResolver{}
	}
	return &AnalyticsService{
		sessions:   sessions,
		attempts:   attempts,
		reputation: reputation,
		events:     events,
		resolver:   resolver,
		logger:     logger,
	}
}

// LoginStats returns per-outcome attempt buckets for the lookback window.
func (s *AnalyticsService) LoginStats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
	stats, err := s.attempts.Stats(ctx, timeRange)
	if err != nil {
		s.logger.Error("failed to compute login stats", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return stats, nil
}

// AddressReputation returns the reputation record for an address, enriched
// with a location when the resolver knows one. A never-observed address
// yields ErrNotFound.
func (s *AnalyticsService) AddressReputation(ctx context.Context, address string) (*ReputationReport, error) {
	record, err := s.reputation.Lookup(ctx, address)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to look up reputation", slog.String("address", address), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	report := &ReputationReport{IPReputation: *record}
	location, err := s.resolver.Geolocate(ctx, address)
	if err != nil {
		s.logger.Warn("geolocation failed", slog.String("address", address), slog.Any("error", err))
	} else {
		report.Location = location
	}
	return report, nil
}

// ExportAll dumps all four collections.
func (s *AnalyticsService) ExportAll(ctx context.Context) (*ExportDump, error) {
	sessions, err := s.sessions.All(ctx)
	if err != nil {
		return nil, models.ErrInternalServer
	}
	attempts, err := s.attempts.All(ctx)
	if err != nil {
		return nil, models.ErrInternalServer
	}
	events, err := s.events.All(ctx)
	if err != nil {
		return nil, models.ErrInternalServer
	}
	reputation, err := s.reputation.All(ctx)
	if err != nil {
		return nil, models.ErrInternalServer
	}

	return &ExportDump{
		Sessions:      sessions,
		LoginAttempts: attempts,
		Events:        events,
		IPReputation:  reputation,
	}, nil
}
