package controllers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/funnelforge/funnelforge/app/repository"
	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
	"github.com/funnelforge/funnelforge/internal/pkg/env"
	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

// Shared controller dependencies, wired once at boot by the router. Keeping
// them behind Initialize* functions (instead of module-scope SDK singletons)
// lets tests substitute fakes.
var (
	catalogService  *catalog.Service
	cmsClient       *catalog.CMSClient
	paymentProvider payments.Provider
	intentManager   *payments.IntentManager
	followupManager *payments.FollowupManager
	repos           *repository.Repositories

	validate = validator.New()
)

// InitializeControllers wires every controller dependency explicitly.
func InitializeControllers(
	provider payments.Provider,
	cms *catalog.CMSClient,
	cat *catalog.Service,
	repositories *repository.Repositories,
) {
	paymentProvider = provider
	cmsClient = cms
	catalogService = cat
	repos = repositories

	intentManager = payments.NewIntentManager(provider, cat)

	var chargeStore payments.OfferChargeStore
	if repositories != nil {
		chargeStore = repositories.OfferCharge
	}
	followupManager = payments.NewFollowupManager(provider, cat, chargeStore)
}

// InitializeControllersFromEnv builds the production dependency set.
func InitializeControllersFromEnv(repositories *repository.Repositories) {
	cms := catalog.NewCMSClientFromEnv()
	InitializeControllers(
		payments.NewStripeProviderFromEnv(),
		cms,
		catalog.NewService(cms),
		repositories,
	)
}

// A safe placeholder so local UI previews render without real credentials.
const devDummyPublishableKey = "pk_test_DUMMY_KEY_FOR_LOCAL_UI_ONLY"

func publishableKey() string {
	key := strings.TrimSpace(env.GetEnv("STRIPE_PUBLISHABLE_KEY", ""))
	if key == "" {
		if !env.IsDev() {
			log.Printf("ERROR: STRIPE_PUBLISHABLE_KEY is missing; checkout widget cannot load")
		}
		key = devDummyPublishableKey
	}
	return key
}
