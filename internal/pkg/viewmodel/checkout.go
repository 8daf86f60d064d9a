package viewmodel

import (
	"fmt"

	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
	"github.com/funnelforge/funnelforge/internal/pkg/funnel"
)

// CheckoutPage is the data a checkout template renders from.
type CheckoutPage struct {
	Product        *catalog.Product
	Behavior       funnel.Behavior
	ButtonText     string
	PriceDisplay   string
	BumpDisplay    string
	PublishableKey string
	ContentSource  string
}

// FormatCents renders minor currency units as a dollar string for templates.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// NewCheckoutPage assembles the checkout view from a resolved product.
func NewCheckoutPage(product *catalog.Product, source catalog.Source, publishableKey string) CheckoutPage {
	behavior := funnel.Resolve(product.Checkout.FunnelType)

	buttonText := product.Checkout.CTAText
	if buttonText == "" {
		buttonText = behavior.DefaultButtonText
	}

	page := CheckoutPage{
		Product:        product,
		Behavior:       behavior,
		ButtonText:     buttonText,
		PriceDisplay:   FormatCents(product.Checkout.Price),
		PublishableKey: publishableKey,
		ContentSource:  string(source),
	}
	if product.Bump != nil {
		page.BumpDisplay = FormatCents(product.Bump.Price)
	}
	return page
}

// OfferPage is the upsell/downsell template data.
type OfferPage struct {
	Product          *catalog.Product
	OriginalIntentID string
	OfferType        string
	Headline         string
	PriceDisplay     string
	RetailDisplay    string
	Features         []string
}

// NewUpsellPage assembles the one-time-offer view.
func NewUpsellPage(product *catalog.Product, originalIntentID string) OfferPage {
	return OfferPage{
		Product:          product,
		OriginalIntentID: originalIntentID,
		OfferType:        "oto",
		Headline:         product.OTO.Headline,
		PriceDisplay:     FormatCents(product.OTO.Price),
		RetailDisplay:    FormatCents(product.OTO.RetailPrice),
		Features:         product.OTO.Features,
	}
}

// NewDownsellPage assembles the fallback-offer view; ok is false when the
// product has no downsell configured.
func NewDownsellPage(product *catalog.Product, originalIntentID string) (OfferPage, bool) {
	if product.Downsell == nil {
		return OfferPage{}, false
	}
	return OfferPage{
		Product:          product,
		OriginalIntentID: originalIntentID,
		OfferType:        "downsell",
		Headline:         product.Downsell.Headline,
		PriceDisplay:     FormatCents(product.Downsell.Price),
		Features:         []string{product.Downsell.Description},
	}, true
}
