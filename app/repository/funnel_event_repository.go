package repository

import (
	"time"

	"github.com/funnelforge/funnelforge/app/models"
	"gorm.io/gorm"
)

type gormFunnelEventRepository struct {
	db *gorm.DB
}

// NewFunnelEventRepository creates a funnel event repository backed by GORM.
func NewFunnelEventRepository(db *gorm.DB) FunnelEventRepository {
	return &gormFunnelEventRepository{db: db}
}

func (r *gormFunnelEventRepository) Create(event *models.FunnelEvent) error {
	return r.db.Create(event).Error
}

func (r *gormFunnelEventRepository) ListRecent(limit int) ([]models.FunnelEvent, error) {
	var events []models.FunnelEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

func (r *gormFunnelEventRepository) ListSince(since time.Time) ([]models.FunnelEvent, error) {
	var events []models.FunnelEvent
	err := r.db.Where("created_at >= ?", since).Order("created_at ASC").Find(&events).Error
	return events, err
}
