package payments

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/funnelforge/funnelforge/internal/pkg/env"
)

// A non-functional placeholder used only so local UI previews boot without
// real credentials. Never valid against the live API.
const devDummySecretKey = "sk_test_DUMMY_KEY_FOR_LOCAL_UI_ONLY"

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider wraps an initialized Stripe client.
func NewStripeProvider(api *client.API) *StripeProvider {
	return &StripeProvider{api: api}
}

// NewStripeProviderFromEnv builds a provider from STRIPE_SECRET_KEY. A
// missing key is fatal in production; in dev a dummy key keeps the app
// bootable for UI work.
func NewStripeProviderFromEnv() *StripeProvider {
	key := strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", ""))
	if key == "" {
		if !env.IsDev() {
			panic("STRIPE_SECRET_KEY is missing in environment variables")
		}
		log.Printf("Warning: STRIPE_SECRET_KEY not set, using dev dummy key (payments will fail)")
		key = devDummySecretKey
	}

	api := &client.API{}
	api.Init(key, nil)
	return NewStripeProvider(api)
}

func (p *StripeProvider) FindOrCreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("customer email is required")
	}

	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := p.api.Customers.List(listParams)
	for iter.Next() {
		c := iter.Customer()
		return &Customer{ID: c.ID, Email: c.Email, Name: c.Name}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(strings.TrimSpace(name)),
	}
	createParams.Context = ctx

	c, err := p.api.Customers.New(createParams)
	if err != nil {
		return nil, err
	}
	return &Customer{ID: c.ID, Email: c.Email, Name: c.Name}, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(in.Currency),
		// Card only: wallets and Link are intentionally disabled so the
		// collected payment method stays chargeable off-session.
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	if in.OffSessionConsent {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return mapStripeIntent(pi), nil
}

func (p *StripeProvider) UpdateIntent(ctx context.Context, id string, in UpdateIntentInput) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(in.Amount),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.Update(id, params)
	if err != nil {
		return nil, err
	}
	return mapStripeIntent(pi), nil
}

func (p *StripeProvider) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, err
	}
	return mapStripeIntent(pi), nil
}

func (p *StripeProvider) ChargeOffSession(ctx context.Context, in OffSessionChargeInput) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(in.Amount),
		Currency:      stripe.String(in.Currency),
		Customer:      stripe.String(in.CustomerID),
		PaymentMethod: stripe.String(in.PaymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return mapStripeIntent(pi), nil
}

func (p *StripeProvider) SetIntentMetadata(ctx context.Context, id string, metadata map[string]string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	_, err := p.api.PaymentIntents.Update(id, params)
	return err
}

func mapStripeIntent(pi *stripe.PaymentIntent) *Intent {
	out := &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
	if pi.Customer != nil {
		out.CustomerID = pi.Customer.ID
	}
	if pi.PaymentMethod != nil {
		out.PaymentMethodID = pi.PaymentMethod.ID
	}
	return out
}

// ProviderMessage extracts the provider's own message from an API error so
// customers see "Your card was declined" instead of a generic failure.
func ProviderMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
