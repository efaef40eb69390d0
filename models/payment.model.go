package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

// Payment is one row per payment attempt. Reference is the external
// transaction id; amount/currency/provider never change after creation.
type Payment struct {
	gorm.Model
	UserID           string         `json:"user_id" gorm:"index;not null"`
	Reference        string         `json:"reference" gorm:"uniqueIndex;not null"`
	Amount           float64        `json:"amount"` // major currency units
	Currency         string         `json:"currency" gorm:"default:'NGN'"`
	Provider         string         `json:"provider" gorm:"default:'paystack'"`
	Status           string         `json:"status" gorm:"default:'pending'"` // pending, success, failed
	ProviderResponse datatypes.JSON `json:"provider_response"`               // raw verify payload
	IsDeleted        bool           `gorm:"default:false"`
}
