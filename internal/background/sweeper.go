package background

import (
	"context"
	"log/slog"
	"time"
)

// SessionDeactivator marks expired sessions inactive.
type SessionDeactivator interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int, error)
}

// SessionSweeper periodically flags sessions past their expiry as inactive.
// Expiry is advisory in the core ledgers; this sweeper is the boundary-layer
// enforcement running alongside the server.
type SessionSweeper struct {
	sessions SessionDeactivator
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sessions SessionDeactivator, logger *slog.Logger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep. Blocks until Stop or context cancellation.
func (s *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopCh:
			s.logger.Info("session sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("session sweeper context cancelled")
			return
		}
	}
}

// Stop signals the sweeper to shut down
func (s *SessionSweeper) Stop() {
	close(s.stopCh)
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	count, err := s.sessions.DeactivateExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("session sweep failed", slog.Any("error", err))
		return
	}
	if count > 0 {
		s.logger.Info("expired sessions deactivated", slog.Int("count", count))
	}
}
