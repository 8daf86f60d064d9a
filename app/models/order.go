package models

import "time"

const (
	OrderStatusPaid = "paid"
)

// Order mirrors one succeeded payment intent locally so reporting does not
// depend on the payment provider or the content store being reachable.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentIntentID string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"payment_intent_id"`
	CustomerEmail   string    `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerName    string    `gorm:"type:varchar(255)" json:"customer_name"`
	ProductSlug     string    `gorm:"type:varchar(191);index" json:"product_slug"`
	ProductName     string    `gorm:"type:varchar(255)" json:"product_name"`
	AmountTotal     int64     `gorm:"not null" json:"amount_total"`
	Currency        string    `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`
	HasBump         bool      `gorm:"default:false" json:"has_bump"`
	Status          string    `gorm:"type:varchar(32);not null;default:'paid'" json:"status"`
	MetadataJSON    string    `gorm:"type:longtext" json:"metadata_json"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
