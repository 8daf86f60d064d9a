package repository

import (
	"time"

	"github.com/funnelforge/funnelforge/app/models"
)

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	CreateIfNotExists(order *models.Order) (bool, *models.Order, error)
	GetByPaymentIntentID(intentID string) (*models.Order, error)
	GetByEmail(email string) ([]models.Order, error)
	List(offset, limit int) ([]models.Order, error)
	Count() (int64, error)
}

// OfferChargeRepository is the idempotency-key store for follow-up offers.
type OfferChargeRepository interface {
	BeginCharge(originalIntentID, offerType string) (*models.OfferCharge, bool, error)
	Reopen(id uint) (bool, error)
	MarkSucceeded(id uint, newIntentID string) error
	MarkFailed(id uint, reason string) error
	GetByIntentAndType(originalIntentID, offerType string) (*models.OfferCharge, error)
}

// WebhookEventRepository persists provider webhook deliveries idempotently.
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// FunnelEventRepository stores fire-and-forget analytics rows.
type FunnelEventRepository interface {
	Create(event *models.FunnelEvent) error
	ListRecent(limit int) ([]models.FunnelEvent, error)
	ListSince(since time.Time) ([]models.FunnelEvent, error)
}

// FunnelStatRepository maintains per-slug aggregate counters.
type FunnelStatRepository interface {
	IncrementCheckoutViews(slug string, delta int64) error
	IncrementPurchases(slug string, delta int64) error
	GetBySlug(slug string) (*models.FunnelStat, error)
}
