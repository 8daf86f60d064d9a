package models

import "time"

const (
	OfferChargeStatusPending   = "pending"
	OfferChargeStatusSucceeded = "succeeded"
	OfferChargeStatusFailed    = "failed"
)

// OfferCharge is the idempotency key for follow-up offer purchases. The
// unique index on (original_intent_id, offer_type) guarantees that two
// concurrent purchase requests for the same intent cannot both charge.
type OfferCharge struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OriginalIntentID string    `gorm:"type:varchar(191);not null;index:ux_offer_charges_intent_type,unique,priority:1" json:"original_intent_id"`
	OfferType        string    `gorm:"type:varchar(16);not null;index:ux_offer_charges_intent_type,unique,priority:2" json:"offer_type"`
	Status           string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	NewIntentID      string    `gorm:"type:varchar(191)" json:"new_intent_id"`
	FailureReason    string    `gorm:"type:text" json:"failure_reason"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
