package models

import "time"

// Session binds a user to an opaque server-issued token for a bounded
// validity window. SessionID is a client-supplied correlation id and is not
// unique across logins; the registry appends a new record per login and
// never overwrites an existing one.
type Session struct {
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id"`
	SessionToken      string    `json:"session_token"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	SourceAddress     string    `json:"source_address"`
	UserAgent         string    `json:"user_agent"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	IsActive          bool      `json:"is_active"`
}

// Expired reports whether the session's validity window has passed. Expiry
// is advisory metadata; enforcement lives in the boundary layer.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
