package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
	"github.com/funnelforge/funnelforge/internal/pkg/funnel"
)

// Metadata keys stashed on payment intents. The follow-up offer flow reads
// these back, so renaming one is a wire-format change.
const (
	MetaProductSlug  = "product_slug"
	MetaProductName  = "product"
	MetaHasBump      = "hasBump"
	MetaCustomerName = "customerName"
)

// Countries we are able to ship physical offers to.
var allowedShippingCountries = []string{"US", "CA", "GB", "AU", "NZ"}

var ErrProductNotFound = errors.New("product not found")

// productResolver is the slice of the catalog service the manager needs.
type productResolver interface {
	Lookup(ctx context.Context, slug string) (*catalog.Product, catalog.Source)
}

// IntentManager owns the server side of checkout: it computes the total from
// trusted configuration and creates or updates the provider intent. A
// client-declared amount is never accepted.
type IntentManager struct {
	provider Provider
	catalog  productResolver
	currency string
}

func NewIntentManager(provider Provider, cat productResolver) *IntentManager {
	return &IntentManager{provider: provider, catalog: cat, currency: "usd"}
}

// CreateOrUpdateInput is the request for one checkout attempt. IntentID is
// set when the page already holds an intent and only the amount changed
// (order bump toggled).
type CreateOrUpdateInput struct {
	ProductSlug   string
	IncludeBump   bool
	CustomerEmail string
	CustomerName  string
	IntentID      string
}

// CreateOrUpdateResult is returned to the checkout page. Amount is for
// display only; the provider intent carries the authoritative value.
type CreateOrUpdateResult struct {
	IntentID          string
	ClientSecret      string
	Amount            int64
	ShippingCountries []string
}

// CreateOrUpdate implements the checkout pricing and intent flow.
func (m *IntentManager) CreateOrUpdate(ctx context.Context, in CreateOrUpdateInput) (*CreateOrUpdateResult, error) {
	slug := strings.TrimSpace(in.ProductSlug)
	if slug == "" {
		return nil, ErrProductNotFound
	}

	product, _ := m.catalog.Lookup(ctx, slug)
	if product == nil {
		return nil, ErrProductNotFound
	}

	// Total is always computed server-side from the resolved product.
	amount := product.Checkout.Price
	includeBump := in.IncludeBump && product.Bump != nil
	if includeBump {
		amount += product.Bump.Price
	}

	customer, err := m.provider.FindOrCreateCustomer(ctx, in.CustomerEmail, in.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("customer lookup failed: %w", err)
	}

	metadata := map[string]string{
		MetaProductSlug:  product.ID,
		MetaProductName:  product.Checkout.ProductName,
		MetaHasBump:      fmt.Sprintf("%t", includeBump),
		MetaCustomerName: strings.TrimSpace(in.CustomerName),
	}

	var intent *Intent
	if in.IntentID != "" {
		intent, err = m.provider.UpdateIntent(ctx, in.IntentID, UpdateIntentInput{
			Amount:   amount,
			Metadata: metadata,
		})
	} else {
		intent, err = m.provider.CreateIntent(ctx, CreateIntentInput{
			Amount:            amount,
			Currency:          m.currency,
			CustomerID:        customer.ID,
			ReceiptEmail:      strings.TrimSpace(in.CustomerEmail),
			OffSessionConsent: true,
			Metadata:          metadata,
		})
	}
	if err != nil {
		return nil, err
	}

	result := &CreateOrUpdateResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
	}

	behavior := funnel.Resolve(product.Checkout.FunnelType)
	if behavior.RequiresShipping {
		result.ShippingCountries = allowedShippingCountries
	}

	return result, nil
}
