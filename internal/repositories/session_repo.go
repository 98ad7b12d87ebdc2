package repositories

import (
	"context"
	"time"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/storage"
	pkgauth "github.com/jordanhw/honeywatch/pkg/auth"
)

const sessionsCollection = "sessions"

// SessionRepository is the session registry. It appends a record per login
// and never deduplicates by session id: clients may reuse a correlation id
// across logins and every entry is preserved.
type SessionRepository struct {
	collection *storage.Collection[models.Session]
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(store *storage.Store) *SessionRepository {
	return &SessionRepository{
		collection: storage.NewCollection[models.Session](store, sessionsCollection),
	}
}

// Create mints a fresh opaque token and appends a new active session valid
// for the given ttl from now.
func (r *SessionRepository) Create(ctx context.Context, sessionID, userID, fingerprint, sourceAddress, userAgent string, ttl time.Duration) (*models.Session, error) {
	token, err := pkgauth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := models.Session{
		SessionID:         sessionID,
		UserID:            userID,
		SessionToken:      token,
		DeviceFingerprint: fingerprint,
		SourceAddress:     sourceAddress,
		UserAgent:         userAgent,
		CreatedAt:         now,
		ExpiresAt:         now.Add(ttl),
		IsActive:          true,
	}

	if _, err := r.collection.Update(ctx, func(sessions []models.Session) ([]models.Session, error) {
		return append(sessions, session), nil
	}); err != nil {
		return nil, err
	}

	return &session, nil
}

// FindBySessionID returns the most recently created active session matching
// the id, or ErrNotFound.
func (r *SessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, models.ErrNotFound
	}

	sessions, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Append order is creation order, so the last match wins
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].SessionID == sessionID && sessions[i].IsActive {
			return &sessions[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// DeactivateExpired flags every active session past its expiry as inactive
// and returns how many were flagged. This is the boundary-layer expiry
// enforcement; the registry itself treats expiry as advisory.
func (r *SessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	deactivated := 0
	if _, err := r.collection.Update(ctx, func(sessions []models.Session) ([]models.Session, error) {
		for i := range sessions {
			if sessions[i].IsActive && sessions[i].Expired(now) {
				sessions[i].IsActive = false
				deactivated++
			}
		}
		return sessions, nil
	}); err != nil {
		return 0, err
	}
	return deactivated, nil
}

// All returns every session record in insertion order.
func (r *SessionRepository) All(ctx context.Context) ([]models.Session, error) {
	return r.collection.Load(ctx)
}
