package payments

import "context"

// Intent statuses this system branches on. Values mirror the provider's
// status enumeration; "succeeded" is the only one business logic checks.
const (
	IntentStatusSucceeded = "succeeded"
)

// Customer is a billing identity at the payment provider, reused so a card
// collected at checkout can be charged again later without re-prompting.
type Customer struct {
	ID    string
	Email string
	Name  string
}

// Intent is the provider-neutral view of a payment-intent resource.
type Intent struct {
	ID              string
	ClientSecret    string
	Amount          int64
	Currency        string
	Status          string
	CustomerID      string
	PaymentMethodID string
	Metadata        map[string]string
}

// CreateIntentInput creates a fresh intent for a checkout attempt.
type CreateIntentInput struct {
	Amount       int64
	Currency     string
	CustomerID   string
	ReceiptEmail string
	// OffSessionConsent enables charging the stored payment method again
	// later without the cardholder present.
	OffSessionConsent bool
	Metadata          map[string]string
}

// UpdateIntentInput rewrites amount and metadata of an existing intent, used
// when the customer toggles the order bump before confirming.
type UpdateIntentInput struct {
	Amount   int64
	Metadata map[string]string
}

// OffSessionChargeInput charges a stored payment method immediately, with no
// customer interaction.
type OffSessionChargeInput struct {
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Metadata        map[string]string
}

// Provider abstracts the hosted payments API. Handlers receive an explicitly
// constructed Provider so tests can substitute a fake.
type Provider interface {
	FindOrCreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error)
	UpdateIntent(ctx context.Context, id string, in UpdateIntentInput) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	ChargeOffSession(ctx context.Context, in OffSessionChargeInput) (*Intent, error)
	SetIntentMetadata(ctx context.Context, id string, metadata map[string]string) error
}
