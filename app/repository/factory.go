package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository implementations.
type Repositories struct {
	Order       OrderRepository
	OfferCharge OfferChargeRepository
	Webhook     WebhookEventRepository
	FunnelEvent FunnelEventRepository
	FunnelStat  FunnelStatRepository
}

// NewRepositories creates all repositories from one DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:       NewOrderRepository(db),
		OfferCharge: NewOfferChargeRepository(db),
		Webhook:     NewWebhookEventRepository(db),
		FunnelEvent: NewFunnelEventRepository(db),
		FunnelStat:  NewFunnelStatRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetOrderRepository returns the order repository instance
func (f *Factory) GetOrderRepository() OrderRepository {
	return f.GetRepositories().Order
}

// GetOfferChargeRepository returns the offer charge repository instance
func (f *Factory) GetOfferChargeRepository() OfferChargeRepository {
	return f.GetRepositories().OfferCharge
}

// GetWebhookEventRepository returns the webhook event repository instance
func (f *Factory) GetWebhookEventRepository() WebhookEventRepository {
	return f.GetRepositories().Webhook
}

// GetFunnelEventRepository returns the funnel event repository instance
func (f *Factory) GetFunnelEventRepository() FunnelEventRepository {
	return f.GetRepositories().FunnelEvent
}

// GetFunnelStatRepository returns the funnel stat repository instance
func (f *Factory) GetFunnelStatRepository() FunnelStatRepository {
	return f.GetRepositories().FunnelStat
}

var (
	globalFactory     *Factory
	globalFactoryOnce sync.Once
)

// InitGlobalFactory wires the package-level factory used by controllers.
func InitGlobalFactory(db *gorm.DB) {
	globalFactoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the process-wide factory. InitGlobalFactory must
// have been called during boot.
func GetGlobalFactory() *Factory {
	return globalFactory
}
