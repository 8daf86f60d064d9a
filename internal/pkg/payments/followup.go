package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/funnelforge/funnelforge/app/models"
)

// Offer types a follow-up charge can be made for.
const (
	OfferTypeOTO      = "oto"
	OfferTypeDownsell = "downsell"
)

var (
	ErrInitialPaymentIncomplete = errors.New("initial payment incomplete")
	ErrMissingCustomerData      = errors.New("missing customer data")
	ErrNoOfferPrice             = errors.New("no price configured for offer")
	ErrInvalidOfferType         = errors.New("invalid offer type")
	// ErrChargeInFlight is returned when a concurrent request holds the
	// idempotency row; the loser fails instead of double-charging.
	ErrChargeInFlight = errors.New("offer charge already in flight")
)

// OfferChargeStore is the idempotency-key persistence the follow-up flow
// needs. The unique constraint on (original_intent_id, offer_type) is what
// makes concurrent duplicates fail atomically.
type OfferChargeStore interface {
	BeginCharge(originalIntentID, offerType string) (*models.OfferCharge, bool, error)
	// Reopen transitions a failed row back to pending and reports whether
	// this caller won the transition.
	Reopen(id uint) (bool, error)
	MarkSucceeded(id uint, newIntentID string) error
	MarkFailed(id uint, reason string) error
}

// FollowupManager charges upsell/downsell offers against the payment method
// stored during the original checkout.
type FollowupManager struct {
	provider Provider
	catalog  productResolver
	store    OfferChargeStore
	currency string
}

func NewFollowupManager(provider Provider, cat productResolver, store OfferChargeStore) *FollowupManager {
	return &FollowupManager{provider: provider, catalog: cat, store: store, currency: "usd"}
}

// ChargeResult reports a follow-up purchase outcome.
type ChargeResult struct {
	Success          bool
	AlreadyPurchased bool
	NewOrderID       string
}

// metadataFlag is the advisory marker written onto the original intent after
// a successful follow-up charge. The database row is the real guard; the
// flag keeps external tooling that reads intent metadata working.
func metadataFlag(offerType string) string {
	if offerType == OfferTypeDownsell {
		return "downsell_purchased"
	}
	return "upsell_purchased"
}

// Charge runs the follow-up offer state machine over one original intent.
func (m *FollowupManager) Charge(ctx context.Context, originalIntentID, offerType string) (*ChargeResult, error) {
	originalIntentID = strings.TrimSpace(originalIntentID)
	if originalIntentID == "" {
		return nil, errors.New("original payment intent id is required")
	}
	offerType = strings.ToLower(strings.TrimSpace(offerType))
	if offerType == "" {
		offerType = OfferTypeOTO
	}
	if offerType != OfferTypeOTO && offerType != OfferTypeDownsell {
		return nil, ErrInvalidOfferType
	}

	original, err := m.provider.GetIntent(ctx, originalIntentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve original intent: %w", err)
	}

	// A follow-up offer can only be charged against a completed purchase.
	if original.Status != IntentStatusSucceeded {
		return nil, ErrInitialPaymentIncomplete
	}

	// Legacy advisory flag from before the idempotency table existed.
	if original.Metadata[metadataFlag(offerType)] == "true" {
		return &ChargeResult{Success: true, AlreadyPurchased: true}, nil
	}

	record, created, err := m.store.BeginCharge(originalIntentID, offerType)
	if err != nil {
		return nil, fmt.Errorf("begin offer charge: %w", err)
	}
	if !created {
		switch record.Status {
		case models.OfferChargeStatusSucceeded:
			return &ChargeResult{Success: true, AlreadyPurchased: true, NewOrderID: record.NewIntentID}, nil
		case models.OfferChargeStatusPending:
			return nil, ErrChargeInFlight
		default:
			// A failed attempt (declined card) may be retried, but two
			// retries can both read the failed row; only the one that wins
			// the failed->pending transition may charge.
			won, err := m.store.Reopen(record.ID)
			if err != nil {
				return nil, fmt.Errorf("reopen offer charge: %w", err)
			}
			if !won {
				return nil, ErrChargeInFlight
			}
		}
	}

	result, chargeErr := m.chargeOnce(ctx, original, offerType)
	if chargeErr != nil {
		if err := m.store.MarkFailed(record.ID, chargeErr.Error()); err != nil {
			log.Printf("[followup] failed to record charge failure for %s/%s: %v", originalIntentID, offerType, err)
		}
		return nil, chargeErr
	}

	if err := m.store.MarkSucceeded(record.ID, result.NewOrderID); err != nil {
		log.Printf("[followup] charge %s succeeded but idempotency update failed: %v", result.NewOrderID, err)
	}

	// Best effort; the database row already prevents double-charging.
	if err := m.provider.SetIntentMetadata(ctx, originalIntentID, map[string]string{
		metadataFlag(offerType): "true",
	}); err != nil {
		log.Printf("[followup] failed to flag original intent %s: %v", originalIntentID, err)
	}

	return result, nil
}

func (m *FollowupManager) chargeOnce(ctx context.Context, original *Intent, offerType string) (*ChargeResult, error) {
	slug := strings.TrimSpace(original.Metadata[MetaProductSlug])
	if slug == "" || original.CustomerID == "" || original.PaymentMethodID == "" {
		return nil, ErrMissingCustomerData
	}

	product, _ := m.catalog.Lookup(ctx, slug)
	if product == nil {
		return nil, ErrProductNotFound
	}

	var price int64
	if offerType == OfferTypeDownsell {
		if product.Downsell == nil {
			return nil, ErrNoOfferPrice
		}
		price = product.Downsell.Price
	} else {
		price = product.OTO.Price
	}
	if price <= 0 {
		return nil, ErrNoOfferPrice
	}

	newIntent, err := m.provider.ChargeOffSession(ctx, OffSessionChargeInput{
		Amount:          price,
		Currency:        m.currency,
		CustomerID:      original.CustomerID,
		PaymentMethodID: original.PaymentMethodID,
		Metadata: map[string]string{
			"is_upsell":          "yes",
			"type":               offerType,
			"parent_transaction": original.ID,
			MetaProductSlug:      slug,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ChargeResult{Success: true, NewOrderID: newIntent.ID}, nil
}
