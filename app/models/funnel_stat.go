package models

import "time"

// FunnelStat holds per-slug aggregate counters, flushed periodically from
// the Redis pending counters.
type FunnelStat struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductSlug   string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"product_slug"`
	CheckoutViews int64     `gorm:"default:0" json:"checkout_views"`
	Purchases     int64     `gorm:"default:0" json:"purchases"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
