package repository

import (
	"github.com/funnelforge/funnelforge/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository backed by GORM.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// CreateIfNotExists inserts an order keyed by its payment intent id. Webhook
// deliveries are retried by the provider, so duplicates are expected.
func (r *gormOrderRepository) CreateIfNotExists(order *models.Order) (bool, *models.Order, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_intent_id"}},
		DoNothing: true,
	}).Create(order)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Order
	if err := r.db.Where("payment_intent_id = ?", order.PaymentIntentID).First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormOrderRepository) GetByPaymentIntentID(intentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("payment_intent_id = ?", intentID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("customer_email = ?", email).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) List(offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}
