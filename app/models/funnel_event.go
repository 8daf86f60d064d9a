package models

import "time"

// FunnelEvent is a fire-and-forget analytics row. Inserts are best-effort;
// the logging endpoint never fails the caller over one.
type FunnelEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      string    `gorm:"type:varchar(64);uniqueIndex" json:"event_id"`
	EventType    string    `gorm:"type:varchar(64);not null;index" json:"event_type"`
	ProductSlug  string    `gorm:"type:varchar(191);index" json:"product_slug"`
	EventStatus  string    `gorm:"type:varchar(64)" json:"event_status"`
	RevenueGross int64     `gorm:"default:0" json:"revenue_gross"`
	PayloadJSON  string    `gorm:"type:longtext" json:"payload_json"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
