package repository

import (
	"github.com/funnelforge/funnelforge/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormOfferChargeRepository struct {
	db *gorm.DB
}

// NewOfferChargeRepository creates an offer charge repository backed by GORM.
func NewOfferChargeRepository(db *gorm.DB) OfferChargeRepository {
	return &gormOfferChargeRepository{db: db}
}

// BeginCharge atomically claims the (original_intent_id, offer_type) key with
// a pending row. When the key already exists the stored row is returned with
// created=false; the unique index makes a concurrent duplicate lose cleanly.
func (r *gormOfferChargeRepository) BeginCharge(originalIntentID, offerType string) (*models.OfferCharge, bool, error) {
	record := &models.OfferCharge{
		OriginalIntentID: originalIntentID,
		OfferType:        offerType,
		Status:           models.OfferChargeStatusPending,
	}

	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "original_intent_id"},
			{Name: "offer_type"},
		},
		DoNothing: true,
	}).Create(record)
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.OfferCharge
	if err := r.db.Where("original_intent_id = ? AND offer_type = ?", originalIntentID, offerType).
		First(&stored).Error; err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

// Reopen resets a failed attempt to pending so the customer can retry after
// a declined card. The status guard makes it a compare-and-swap: of two
// retries that both read the failed row, only one transition succeeds, and
// the result reports which caller it was.
func (r *gormOfferChargeRepository) Reopen(id uint) (bool, error) {
	tx := r.db.Model(&models.OfferCharge{}).
		Where("id = ? AND status = ?", id, models.OfferChargeStatusFailed).
		Updates(map[string]interface{}{
			"status":         models.OfferChargeStatusPending,
			"failure_reason": "",
		})
	return tx.RowsAffected > 0, tx.Error
}

func (r *gormOfferChargeRepository) MarkSucceeded(id uint, newIntentID string) error {
	return r.db.Model(&models.OfferCharge{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        models.OfferChargeStatusSucceeded,
		"new_intent_id": newIntentID,
	}).Error
}

func (r *gormOfferChargeRepository) MarkFailed(id uint, reason string) error {
	return r.db.Model(&models.OfferCharge{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.OfferChargeStatusFailed,
		"failure_reason": reason,
	}).Error
}

func (r *gormOfferChargeRepository) GetByIntentAndType(originalIntentID, offerType string) (*models.OfferCharge, error) {
	var record models.OfferCharge
	if err := r.db.Where("original_intent_id = ? AND offer_type = ?", originalIntentID, offerType).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
