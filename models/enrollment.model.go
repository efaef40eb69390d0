package models

import (
	"time"

	"gorm.io/gorm"
)

// Access types
const (
	AccessFree = "free"
	AccessPaid = "paid"
)

// Enrollment statuses
const (
	StatusActive = "active"
	StatusLocked = "locked"
)

// Learning tracks
const (
	TrackFrontend   = "frontend"
	TrackBackend    = "backend"
	TrackFullstack  = "fullstack"
	TrackFoundation = "foundation"
)

// Enrollment binds a learner to a track/mode with their current access rights.
// At most one non-deleted enrollment exists per user.
type Enrollment struct {
	gorm.Model
	UserID        string     `json:"user_id" gorm:"index;not null"`
	LearningTrack string     `json:"learning_track" gorm:"default:'foundation'"` // frontend, backend, fullstack, foundation
	LearningMode  string     `json:"learning_mode" gorm:"default:'self_paced'"`  // self_paced, live, mentorship, project, hybrid
	AccessType    string     `json:"access_type" gorm:"default:'free'"`          // free, paid
	Status        string     `json:"status" gorm:"default:'active'"`             // active, locked
	FreeExpiresAt *time.Time `json:"free_expires_at"`                            // set once at creation for free access
	ReminderSent  bool       `json:"reminder_sent" gorm:"default:false"`
	IsDeleted     bool       `gorm:"default:false"`
}
