package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jordanhw/honeywatch/internal/models"
	pkglogger "github.com/jordanhw/honeywatch/pkg/logger"
)

// DeviceInfo is the client-reported device envelope attached to telemetry.
type DeviceInfo struct {
	Fingerprint string
	Browser     string
	Screen      string
	Timezone    string
	Referrer    string
	CurrentURL  string
}

// EventInput is one behavioral event as submitted by the instrumentation
// collaborator, before user resolution and id assignment.
type EventInput struct {
	Timestamp *time.Time
	SessionID string
	EventType string
	EventData json.RawMessage
	Device    DeviceInfo
}

// EventService records behavioral telemetry, resolving the owning session's
// user on a best-effort basis.
type EventService struct {
	events   EventRecorder
	sessions SessionRegistry
	logger   *slog.Logger
	audit    *pkglogger.AuditLogger
}

// NewEventService creates a new EventService
func NewEventService(events EventRecorder, sessions SessionRegistry, logger *slog.Logger, audit *pkglogger.AuditLogger) *EventService {
	return &EventService{
		events:   events,
		sessions: sessions,
		logger:   logger,
		audit:    audit,
	}
}

// Record appends a single event and returns the persisted record.
func (s *EventService) Record(ctx context.Context, in EventInput, sourceAddress string) (*models.EventRecord, error) {
	if in.SessionID == "" || in.EventType == "" {
		return nil, models.ErrBadRequest
	}

	record := s.buildRecord(ctx, in, sourceAddress)
	id, err := s.events.RecordOne(ctx, record)
	if err != nil {
		s.logger.Error("failed to record event", slog.String("event_type", in.EventType), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	record.LogID = id

	s.audit.LogEventIngest(record.EventType, record.SessionID, sourceAddress, 1, 0)
	return &record, nil
}

// RecordBatch processes inputs independently: a malformed input is counted
// and skipped without aborting the rest, while every valid input is
// persisted in one storage update so partial-batch persistence cannot
// occur at the storage layer.
func (s *EventService) RecordBatch(ctx context.Context, inputs []EventInput, sourceAddress string) (logged, failed int, err error) {
	records := make([]models.EventRecord, 0, len(inputs))
	for _, in := range inputs {
		if in.SessionID == "" || in.EventType == "" {
			failed++
			continue
		}
		records = append(records, s.buildRecord(ctx, in, sourceAddress))
	}

	if len(records) > 0 {
		if _, err := s.events.RecordBatch(ctx, records); err != nil {
			s.logger.Error("failed to record event batch", slog.Int("batch_size", len(records)), slog.Any("error", err))
			return 0, 0, models.ErrInternalServer
		}
	}

	s.audit.LogEventIngest("batch", "", sourceAddress, len(records), failed)
	return len(records), failed, nil
}

// buildRecord maps an input to a persistable record, resolving the owning
// user when the session is known. A missing session is tolerated; the
// record keeps a nil user.
func (s *EventService) buildRecord(ctx context.Context, in EventInput, sourceAddress string) models.EventRecord {
	var userID *string
	session, err := s.sessions.FindBySessionID(ctx, in.SessionID)
	switch {
	case err == nil:
		userID = &session.UserID
	case !errors.Is(err, models.ErrNotFound):
		s.logger.Error("failed to resolve session for event", slog.String("session_id", in.SessionID), slog.Any("error", err))
	}

	record := models.EventRecord{
		SessionID:         in.SessionID,
		UserID:            userID,
		EventType:         in.EventType,
		EventData:         in.EventData,
		SourceAddress:     sourceAddress,
		DeviceFingerprint: in.Device.Fingerprint,
		BrowserInfo:       in.Device.Browser,
		ScreenInfo:        in.Device.Screen,
		TimezoneInfo:      in.Device.Timezone,
		Referrer:          in.Device.Referrer,
		CurrentURL:        in.Device.CurrentURL,
	}
	if in.Timestamp != nil {
		record.Timestamp = in.Timestamp.UTC()
	} else {
		// Stamped here so the echoed record matches what is persisted
		record.Timestamp = time.Now().UTC()
	}
	return record
}
