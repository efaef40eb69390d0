package models

import "gorm.io/gorm"

const RoleAdmin = "admin"

// UserRole flags a user as admin. No record means ordinary learner.
type UserRole struct {
	gorm.Model
	UserID    string `json:"user_id" gorm:"index;not null"`
	Role      string `json:"role" gorm:"not null"` // admin
	IsDeleted bool   `gorm:"default:false"`
}
