package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	Username      string
	UserID        string
	SourceAddress string
	UserAgent     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger emits structured security audit records over slog
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// LogAuthAttempt logs the outcome of a login attempt
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Username != "" {
		attrs = append(attrs, slog.String("username", event.Username))
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.SourceAddress != "" {
		attrs = append(attrs, slog.String("source_address", event.SourceAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

// LogReputationChange logs a reputation score transition for an address
func (al *AuditLogger) LogReputationChange(address string, score, totalLogins int) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "reputation"),
		slog.String("source_address", address),
		slog.Int("reputation_score", score),
		slog.Int("total_logins", totalLogins),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

// LogEventIngest logs a telemetry ingest action
func (al *AuditLogger) LogEventIngest(eventType, sessionID, sourceAddress string, logged, failed int) {
	attrs := []slog.Attr{
		slog.String("audit_type", "telemetry"),
		slog.String("event_type", eventType),
		slog.Int("events_logged", logged),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if sessionID != "" {
		attrs = append(attrs, slog.String("session_id", sessionID))
	}
	if sourceAddress != "" {
		attrs = append(attrs, slog.String("source_address", sourceAddress))
	}
	if failed > 0 {
		attrs = append(attrs, slog.Int("events_failed", failed))
	}
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
}
