package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// EventRecord is a single piece of behavioral telemetry tied to a session.
// Records are immutable once appended. UserID is resolved via a best-effort
// session lookup and stays nil when the session is unknown.
type EventRecord struct {
	LogID             int64           `json:"log_id"`
	Timestamp         time.Time       `json:"timestamp"`
	SessionID         string          `json:"session_id"`
	UserID            *string         `json:"user_id"`
	EventType         string          `json:"event_type"`
	EventData         json.RawMessage `json:"event_data,omitempty"`
	SourceAddress     string          `json:"source_address"`
	DeviceFingerprint string          `json:"device_fingerprint"`
	BrowserInfo       string          `json:"browser_info,omitempty"`
	ScreenInfo        string          `json:"screen_info,omitempty"`
	TimezoneInfo      string          `json:"timezone_info,omitempty"`
	Referrer          string          `json:"referrer,omitempty"`
	CurrentURL        string          `json:"current_url,omitempty"`
}
