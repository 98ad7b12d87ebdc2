package models

import "time"

// Reputation scoring parameters. First observations start near-trusted, a
// deliberately lenient prior.
const (
	ReputationMin = 0
	ReputationMax = 100

	ReputationInitialSuccess = 95
	ReputationInitialFailure = 90

	ReputationSuccessReward  = 1
	ReputationFailurePenalty = 5
)

// IPReputation is the per-source-address trust record. Created lazily on the
// first observed attempt from an address, updated on every subsequent one,
// never deleted.
//
// Invariants: TotalLogins == SuccessfulLogins + FailedLogins, the score stays
// within [ReputationMin, ReputationMax], and FirstSeen never moves after
// creation.
type IPReputation struct {
	Address              string    `json:"address"`
	ReputationScore      int       `json:"reputation_score"`
	TotalLogins          int       `json:"total_logins"`
	FailedLogins         int       `json:"failed_logins"`
	SuccessfulLogins     int       `json:"successful_logins"`
	SuspiciousActivities int       `json:"suspicious_activities"`
	FirstSeen            time.Time `json:"first_seen"`
	LastSeen             time.Time `json:"last_seen"`
	IsBlocked            bool      `json:"is_blocked"`
}

// NewIPReputation creates the first record for an address from its first
// observed login outcome.
func NewIPReputation(address string, success bool, now time.Time) *IPReputation {
	rec := &IPReputation{
		Address:     address,
		TotalLogins: 1,
		FirstSeen:   now,
		LastSeen:    now,
	}
	if success {
		rec.SuccessfulLogins = 1
		rec.ReputationScore = ReputationInitialSuccess
	} else {
		rec.FailedLogins = 1
		rec.SuspiciousActivities = 1
		rec.ReputationScore = ReputationInitialFailure
	}
	return rec
}

// ApplyOutcome folds one more login outcome into an existing record.
// IsBlocked is never transitioned here; blocking policy belongs to a policy
// collaborator.
func (r *IPReputation) ApplyOutcome(success bool, now time.Time) {
	r.TotalLogins++
	if success {
		r.SuccessfulLogins++
		r.ReputationScore = clampScore(r.ReputationScore + ReputationSuccessReward)
	} else {
		r.FailedLogins++
		r.SuspiciousActivities++
		r.ReputationScore = clampScore(r.ReputationScore - ReputationFailurePenalty)
	}
	r.LastSeen = now
}

func clampScore(score int) int {
	if score < ReputationMin {
		return ReputationMin
	}
	if score > ReputationMax {
		return ReputationMax
	}
	return score
}
