// Package entitlement answers, for any learner at any moment, whether they
// may see gated course content. All functions are pure: the caller supplies
// the clock, so the result is deterministic and re-evaluated per request.
package entitlement

import (
	"math"
	"time"

	"edupath/models"
)

// State is the single access state derived from an enrollment snapshot.
type State string

const (
	FreeActive  State = "free_active"
	FreeExpired State = "free_expired"
	PaidLocked  State = "paid_locked"
	PaidActive  State = "paid_active"
)

// Snapshot is the slice of an enrollment that access decisions depend on.
type Snapshot struct {
	AccessType    string
	Status        string
	FreeExpiresAt *time.Time
}

// SnapshotOf builds a Snapshot from a stored enrollment row.
func SnapshotOf(e models.Enrollment) Snapshot {
	return Snapshot{
		AccessType:    e.AccessType,
		Status:        e.Status,
		FreeExpiresAt: e.FreeExpiresAt,
	}
}

// Evaluate maps an enrollment snapshot and the current time to exactly one
// State. Malformed stored shapes (a locked free enrollment, an unknown
// access type) collapse to FreeExpired: access decisions must never panic,
// and the safe default is deny.
func Evaluate(s Snapshot, now time.Time) State {
	switch s.AccessType {
	case models.AccessPaid:
		if s.Status == models.StatusActive {
			return PaidActive
		}
		return PaidLocked
	case models.AccessFree:
		if s.Status != models.StatusActive {
			return FreeExpired
		}
		if s.FreeExpiresAt != nil && !s.FreeExpiresAt.After(now) {
			return FreeExpired
		}
		return FreeActive
	default:
		return FreeExpired
	}
}

// HasAccess reports whether the state allows viewing gated content.
func (s State) HasAccess() bool {
	return s == FreeActive || s == PaidActive
}

// ModuleVisible decides whether a single module is open to the learner.
// Paid learners see everything; free learners see the first freeLimit
// modules (0-based index) plus any module flagged as a free preview.
// freeLimit <= 0 falls back to the default cutoff.
func ModuleVisible(st State, moduleIndex int, isFreePreview bool, freeLimit int) bool {
	if !st.HasAccess() {
		return false
	}
	if st == PaidActive {
		return true
	}
	if freeLimit <= 0 {
		freeLimit = defaultFreeModuleLimit
	}
	return moduleIndex < freeLimit || isFreePreview
}

const defaultFreeModuleLimit = 5

// DaysRemaining returns the whole days left on a ticking free trial,
// rounded up and never negative. It is nil for paid enrollments and for
// free enrollments without an expiry.
func DaysRemaining(s Snapshot, now time.Time) *int {
	if s.AccessType != models.AccessFree || s.FreeExpiresAt == nil {
		return nil
	}
	days := int(math.Ceil(s.FreeExpiresAt.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}
