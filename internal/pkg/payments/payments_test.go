package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
)

// fakeProvider records calls and serves canned intents, standing in for the
// hosted payments API.
type fakeProvider struct {
	intents          map[string]*Intent
	customers        map[string]*Customer
	nextIntentSeq    int
	offSessionCalls  int
	createCalls      int
	updateCalls      int
	metadataFailures bool
	chargeErr        error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		intents:   map[string]*Intent{},
		customers: map[string]*Customer{},
	}
}

func (f *fakeProvider) FindOrCreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	if email == "" {
		return nil, errors.New("customer email is required")
	}
	if c, ok := f.customers[email]; ok {
		return c, nil
	}
	c := &Customer{ID: fmt.Sprintf("cus_%d", len(f.customers)+1), Email: email, Name: name}
	f.customers[email] = c
	return c, nil
}

func (f *fakeProvider) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	f.createCalls++
	f.nextIntentSeq++
	intent := &Intent{
		ID:           fmt.Sprintf("pi_%d", f.nextIntentSeq),
		ClientSecret: fmt.Sprintf("pi_%d_secret", f.nextIntentSeq),
		Amount:       in.Amount,
		Currency:     in.Currency,
		Status:       "requires_payment_method",
		CustomerID:   in.CustomerID,
		Metadata:     in.Metadata,
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeProvider) UpdateIntent(ctx context.Context, id string, in UpdateIntentInput) (*Intent, error) {
	f.updateCalls++
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent %s", id)
	}
	intent.Amount = in.Amount
	for k, v := range in.Metadata {
		intent.Metadata[k] = v
	}
	return intent, nil
}

func (f *fakeProvider) GetIntent(ctx context.Context, id string) (*Intent, error) {
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent %s", id)
	}
	return intent, nil
}

func (f *fakeProvider) ChargeOffSession(ctx context.Context, in OffSessionChargeInput) (*Intent, error) {
	f.offSessionCalls++
	if f.chargeErr != nil {
		return nil, f.chargeErr
	}
	f.nextIntentSeq++
	intent := &Intent{
		ID:              fmt.Sprintf("pi_%d", f.nextIntentSeq),
		Amount:          in.Amount,
		Currency:        in.Currency,
		Status:          IntentStatusSucceeded,
		CustomerID:      in.CustomerID,
		PaymentMethodID: in.PaymentMethodID,
		Metadata:        in.Metadata,
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeProvider) SetIntentMetadata(ctx context.Context, id string, metadata map[string]string) error {
	if f.metadataFailures {
		return errors.New("metadata write failed")
	}
	intent, ok := f.intents[id]
	if !ok {
		return fmt.Errorf("no such intent %s", id)
	}
	if intent.Metadata == nil {
		intent.Metadata = map[string]string{}
	}
	for k, v := range metadata {
		intent.Metadata[k] = v
	}
	return nil
}

// fakeResolver serves a fixed product for any slug it knows.
type fakeResolver struct {
	products map[string]*catalog.Product
}

func (f *fakeResolver) Lookup(ctx context.Context, slug string) (*catalog.Product, catalog.Source) {
	if p, ok := f.products[slug]; ok {
		return p, catalog.SourceStatic
	}
	p := catalog.DefaultProduct()
	return &p, catalog.SourceDefault
}

// memoryChargeStore is an in-memory OfferChargeStore with the same
// claim-by-unique-key semantics as the GORM implementation.
type memoryChargeStore struct {
	records map[string]*models.OfferCharge
	nextID  uint
}

func newMemoryChargeStore() *memoryChargeStore {
	return &memoryChargeStore{records: map[string]*models.OfferCharge{}}
}

func chargeKey(intentID, offerType string) string {
	return intentID + "/" + offerType
}

func (s *memoryChargeStore) BeginCharge(originalIntentID, offerType string) (*models.OfferCharge, bool, error) {
	key := chargeKey(originalIntentID, offerType)
	if existing, ok := s.records[key]; ok {
		copied := *existing
		return &copied, false, nil
	}
	s.nextID++
	record := &models.OfferCharge{
		ID:               s.nextID,
		OriginalIntentID: originalIntentID,
		OfferType:        offerType,
		Status:           models.OfferChargeStatusPending,
	}
	s.records[key] = record
	copied := *record
	return &copied, true, nil
}

func (s *memoryChargeStore) find(id uint) *models.OfferCharge {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *memoryChargeStore) Reopen(id uint) (bool, error) {
	if r := s.find(id); r != nil && r.Status == models.OfferChargeStatusFailed {
		r.Status = models.OfferChargeStatusPending
		r.FailureReason = ""
		return true, nil
	}
	return false, nil
}

func (s *memoryChargeStore) MarkSucceeded(id uint, newIntentID string) error {
	if r := s.find(id); r != nil {
		r.Status = models.OfferChargeStatusSucceeded
		r.NewIntentID = newIntentID
	}
	return nil
}

func (s *memoryChargeStore) MarkFailed(id uint, reason string) error {
	if r := s.find(id); r != nil {
		r.Status = models.OfferChargeStatusFailed
		r.FailureReason = reason
	}
	return nil
}

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID: "legacy-blueprint",
		Checkout: catalog.Checkout{
			ProductName: "The Legacy Blueprint",
			Price:       3700,
			FunnelType:  "digital_product",
		},
		Bump: &catalog.Bump{Price: 1700},
		OTO:  catalog.OTO{Price: 2700},
		Downsell: &catalog.Downsell{
			Price: 1900,
		},
	}
}
