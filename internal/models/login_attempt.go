package models

import "time"

// Attempt outcomes
const (
	AttemptStatusSuccess = "SUCCESS"
	AttemptStatusFailure = "FAILURE"
)

// Persisted failure reasons
const (
	FailureReasonInvalidUsername = "invalid_username"
	FailureReasonInvalidPassword = "invalid_password"
)

// LoginAttempt represents a single login attempt. Records are immutable once
// appended; the ledger is append-only.
type LoginAttempt struct {
	AttemptID         int64     `json:"attempt_id"`
	Timestamp         time.Time `json:"timestamp"`
	Username          string    `json:"username"`
	UserID            *string   `json:"user_id"`
	SessionID         string    `json:"session_id"`
	SourceAddress     string    `json:"source_address"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	UserAgent         string    `json:"user_agent"`
	SecretLength      int       `json:"secret_length"`
	RememberMe        bool      `json:"remember_me"`
	AttemptStatus     string    `json:"attempt_status"`
	FailureReason     *string   `json:"failure_reason"`
}

// AttemptBucket aggregates attempts sharing an outcome within a lookback
// window. Unique counts are set cardinalities computed independently per
// bucket.
type AttemptBucket struct {
	Count                 int `json:"count"`
	UniqueSourceAddresses int `json:"uniqueSourceAddresses"`
	UniqueUsernames       int `json:"uniqueUsernames"`
}

// TimeRange is the fixed enumeration of analytics lookback windows.
type TimeRange string

const (
	TimeRangeHour TimeRange = "1h"
	TimeRangeDay  TimeRange = "24h"
	TimeRangeWeek TimeRange = "7d"
)

// ParseTimeRange maps a query value to a TimeRange, defaulting to 24h for
// empty or unrecognized input.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case TimeRangeHour, TimeRangeDay, TimeRangeWeek:
		return TimeRange(s)
	default:
		return TimeRangeDay
	}
}

// Duration returns the lookback duration for the range.
func (tr TimeRange) Duration() time.Duration {
	switch tr {
	case TimeRangeHour:
		return time.Hour
	case TimeRangeWeek:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
