package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jordanhw/honeywatch/internal/models"
	pkgauth "github.com/jordanhw/honeywatch/pkg/auth"
	pkglogger "github.com/jordanhw/honeywatch/pkg/logger"
)

// AuthConfig tunes the login flow.
type AuthConfig struct {
	SessionTTL      time.Duration
	RememberMeTTL   time.Duration
	MaxAttemptHint  int
	FailureLookback time.Duration
}

// AuthService runs the login flow: reputation read, credential verification,
// attempt append, reputation write, and session creation on success. The
// three collections involved are independent; there is no cross-collection
// transaction, and partial completion is tolerated as a recoverable
// inconsistency rather than rolled back.
type AuthService struct {
	sessions   SessionRegistry
	attempts   AttemptLedger
	reputation ReputationEngine
	verifier   pkgauth.CredentialVerifier
	cfg        AuthConfig
	logger     *slog.Logger
	audit      *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	sessions SessionRegistry,
	attempts AttemptLedger,
	reputation ReputationEngine,
	verifier pkgauth.CredentialVerifier,
	cfg AuthConfig,
	logger *slog.Logger,
	audit *pkglogger.AuditLogger,
) *AuthService {
	return &AuthService{
		sessions:   sessions,
		attempts:   attempts,
		reputation: reputation,
		verifier:   verifier,
		cfg:        cfg,
		logger:     logger,
		audit:      audit,
	}
}

// LoginInput carries one login request into the flow.
type LoginInput struct {
	Username          string
	Secret            string
	SessionID         string
	DeviceFingerprint string
	UserAgent         string
	SourceAddress     string
	RememberMe        bool
}

// LoginResult is the outcome of a login flow. AttemptsRemaining is an
// advisory hint, only meaningful when Authenticated is false.
type LoginResult struct {
	Authenticated     bool
	UserID            string
	Username          string
	SessionID         string
	SessionToken      string
	ExpiresAt         time.Time
	AttemptsRemaining int
}

// Login authenticates a request, records the attempt, updates the source
// address reputation, and on success creates a session.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if in.Username == "" || in.Secret == "" {
		return nil, models.ErrBadRequest
	}

	// A client that omits the correlation id gets a generated one so the
	// attempt and any session still correlate.
	if in.SessionID == "" {
		in.SessionID = uuid.New().String()
	}

	// Consult current reputation before deciding anything. The engine never
	// blocks by itself; the record is surfaced for logging and policy hooks.
	if rep, err := s.reputation.Lookup(ctx, in.SourceAddress); err == nil {
		s.logger.Debug("reputation consulted",
			slog.String("source_address", in.SourceAddress),
			slog.Int("reputation_score", rep.ReputationScore),
			slog.Bool("is_blocked", rep.IsBlocked))
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to consult reputation", slog.Any("error", err))
	}

	user, verified := s.verifier.Verify(in.Username, in.Secret)

	var userID *string
	var failureReason *string
	status := models.AttemptStatusFailure
	if user != nil {
		userID = &user.ID
	}
	switch {
	case verified:
		status = models.AttemptStatusSuccess
	case user == nil:
		reason := models.FailureReasonInvalidUsername
		failureReason = &reason
	default:
		reason := models.FailureReasonInvalidPassword
		failureReason = &reason
	}

	attemptID, err := s.attempts.Record(ctx, models.LoginAttempt{
		Username:          in.Username,
		UserID:            userID,
		SessionID:         in.SessionID,
		SourceAddress:     in.SourceAddress,
		DeviceFingerprint: in.DeviceFingerprint,
		UserAgent:         in.UserAgent,
		SecretLength:      len(in.Secret),
		RememberMe:        in.RememberMe,
		AttemptStatus:     status,
		FailureReason:     failureReason,
	})
	if err != nil {
		s.logger.Error("failed to record login attempt", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	rep, err := s.reputation.Observe(ctx, in.SourceAddress, verified)
	if err != nil {
		// The attempt is already in the ledger; a reputation write failure
		// leaves a recoverable inconsistency, not corruption.
		s.logger.Error("failed to update reputation",
			slog.String("source_address", in.SourceAddress),
			slog.Int64("attempt_id", attemptID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	s.audit.LogReputationChange(rep.Address, rep.ReputationScore, rep.TotalLogins)

	reason := ""
	if failureReason != nil {
		reason = *failureReason
	}
	auditUserID := ""
	if userID != nil {
		auditUserID = *userID
	}
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "login",
		Username:      in.Username,
		UserID:        auditUserID,
		SourceAddress: in.SourceAddress,
		UserAgent:     in.UserAgent,
		Success:       verified,
		FailureReason: reason,
	})

	if !verified {
		failures, err := s.attempts.CountRecentFailures(ctx, in.SourceAddress, time.Now().Add(-s.cfg.FailureLookback))
		if err != nil {
			s.logger.Error("failed to count recent failures", slog.Any("error", err))
			failures = s.cfg.MaxAttemptHint
		}
		hint := s.cfg.MaxAttemptHint - failures
		if hint < 0 {
			hint = 0
		}
		return &LoginResult{
			Authenticated:     false,
			SessionID:         in.SessionID,
			AttemptsRemaining: hint,
		}, nil
	}

	ttl := s.cfg.SessionTTL
	if in.RememberMe {
		ttl = s.cfg.RememberMeTTL
	}
	session, err := s.sessions.Create(ctx, in.SessionID, user.ID, in.DeviceFingerprint, in.SourceAddress, in.UserAgent, ttl)
	if err != nil {
		s.logger.Error("failed to create session",
			slog.Int64("attempt_id", attemptID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.SessionID))

	return &LoginResult{
		Authenticated: true,
		UserID:        user.ID,
		Username:      user.Username,
		SessionID:     session.SessionID,
		SessionToken:  session.SessionToken,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}
