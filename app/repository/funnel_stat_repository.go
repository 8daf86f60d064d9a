package repository

import (
	"github.com/funnelforge/funnelforge/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormFunnelStatRepository struct {
	db *gorm.DB
}

// NewFunnelStatRepository creates a funnel stat repository backed by GORM.
func NewFunnelStatRepository(db *gorm.DB) FunnelStatRepository {
	return &gormFunnelStatRepository{db: db}
}

func (r *gormFunnelStatRepository) IncrementCheckoutViews(slug string, delta int64) error {
	return r.increment(slug, "checkout_views", delta)
}

func (r *gormFunnelStatRepository) IncrementPurchases(slug string, delta int64) error {
	return r.increment(slug, "purchases", delta)
}

func (r *gormFunnelStatRepository) increment(slug, column string, delta int64) error {
	if delta == 0 {
		return nil
	}
	stat := &models.FunnelStat{ProductSlug: slug}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_slug"}},
		DoNothing: true,
	}).Create(stat).Error; err != nil {
		return err
	}
	return r.db.Model(&models.FunnelStat{}).
		Where("product_slug = ?", slug).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *gormFunnelStatRepository) GetBySlug(slug string) (*models.FunnelStat, error) {
	var stat models.FunnelStat
	if err := r.db.Where("product_slug = ?", slug).First(&stat).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}
