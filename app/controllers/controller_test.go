package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/app/repository"
	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

// stubProvider serves canned intents so handlers can be exercised without
// the hosted payments API.
type stubProvider struct {
	mu              sync.Mutex
	intents         map[string]*payments.Intent
	nextSeq         int
	offSessionCalls int
}

func newStubProvider() *stubProvider {
	return &stubProvider{intents: map[string]*payments.Intent{}}
}

func (s *stubProvider) seedIntent(intent *payments.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if intent.Metadata == nil {
		intent.Metadata = map[string]string{}
	}
	s.intents[intent.ID] = intent
}

func (s *stubProvider) FindOrCreateCustomer(ctx context.Context, email, name string) (*payments.Customer, error) {
	if email == "" {
		return nil, errors.New("customer email is required")
	}
	return &payments.Customer{ID: "cus_test", Email: email, Name: name}, nil
}

func (s *stubProvider) CreateIntent(ctx context.Context, in payments.CreateIntentInput) (*payments.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	intent := &payments.Intent{
		ID:           fmt.Sprintf("pi_%d", s.nextSeq),
		ClientSecret: fmt.Sprintf("pi_%d_secret", s.nextSeq),
		Amount:       in.Amount,
		Currency:     in.Currency,
		Status:       "requires_payment_method",
		CustomerID:   in.CustomerID,
		Metadata:     in.Metadata,
	}
	s.intents[intent.ID] = intent
	return intent, nil
}

func (s *stubProvider) UpdateIntent(ctx context.Context, id string, in payments.UpdateIntentInput) (*payments.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent: %s", id)
	}
	intent.Amount = in.Amount
	if in.Metadata != nil {
		intent.Metadata = in.Metadata
	}
	return intent, nil
}

func (s *stubProvider) GetIntent(ctx context.Context, id string) (*payments.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent: %s", id)
	}
	return intent, nil
}

func (s *stubProvider) ChargeOffSession(ctx context.Context, in payments.OffSessionChargeInput) (*payments.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offSessionCalls++
	s.nextSeq++
	intent := &payments.Intent{
		ID:         fmt.Sprintf("pi_%d", s.nextSeq),
		Amount:     in.Amount,
		Currency:   in.Currency,
		Status:     payments.IntentStatusSucceeded,
		CustomerID: in.CustomerID,
		Metadata:   in.Metadata,
	}
	s.intents[intent.ID] = intent
	return intent, nil
}

func (s *stubProvider) SetIntentMetadata(ctx context.Context, id string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[id]
	if !ok {
		return fmt.Errorf("no such intent: %s", id)
	}
	for k, v := range metadata {
		intent.Metadata[k] = v
	}
	return nil
}

// fakeOrderRepo keeps orders in memory keyed by payment intent id.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (f *fakeOrderRepo) CreateIfNotExists(order *models.Order) (bool, *models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.orders[order.PaymentIntentID]; ok {
		return false, existing, nil
	}
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	f.orders[order.PaymentIntentID] = order
	return true, order, nil
}

func (f *fakeOrderRepo) GetByPaymentIntentID(intentID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[intentID]; ok {
		return o, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) GetByEmail(email string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerEmail == email {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(offset, limit int) ([]models.Order, error) { return nil, nil }

func (f *fakeOrderRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

// fakeWebhookRepo deduplicates by (provider, provider event id).
type fakeWebhookRepo struct {
	mu     sync.Mutex
	events map[string]*models.WebhookEvent
	nextID uint
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{events: map[string]*models.WebhookEvent{}}
}

func (f *fakeWebhookRepo) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := event.Provider + "/" + event.ProviderEventID
	if existing, ok := f.events[key]; ok {
		return false, existing, nil
	}
	f.nextID++
	event.ID = f.nextID
	f.events[key] = event
	return true, event, nil
}

func (f *fakeWebhookRepo) MarkProcessed(id uint, processingError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
			return nil
		}
	}
	return errors.New("not found")
}

// fakeOfferChargeRepo mirrors the unique-constraint claim semantics.
type fakeOfferChargeRepo struct {
	mu      sync.Mutex
	charges map[string]*models.OfferCharge
	nextID  uint
}

func newFakeOfferChargeRepo() *fakeOfferChargeRepo {
	return &fakeOfferChargeRepo{charges: map[string]*models.OfferCharge{}}
}

func offerKey(intentID, offerType string) string { return intentID + "/" + offerType }

func (f *fakeOfferChargeRepo) BeginCharge(originalIntentID, offerType string) (*models.OfferCharge, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := offerKey(originalIntentID, offerType)
	if existing, ok := f.charges[key]; ok {
		return existing, false, nil
	}
	f.nextID++
	record := &models.OfferCharge{
		ID:               f.nextID,
		OriginalIntentID: originalIntentID,
		OfferType:        offerType,
		Status:           models.OfferChargeStatusPending,
	}
	f.charges[key] = record
	return record, true, nil
}

func (f *fakeOfferChargeRepo) Reopen(id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.charges {
		if r.ID == id {
			if r.Status != models.OfferChargeStatusFailed {
				return false, nil
			}
			r.Status = models.OfferChargeStatusPending
			r.FailureReason = ""
			return true, nil
		}
	}
	return false, errors.New("not found")
}

func (f *fakeOfferChargeRepo) MarkSucceeded(id uint, newIntentID string) error {
	return f.update(id, func(r *models.OfferCharge) {
		r.Status = models.OfferChargeStatusSucceeded
		r.NewIntentID = newIntentID
	})
}

func (f *fakeOfferChargeRepo) MarkFailed(id uint, reason string) error {
	return f.update(id, func(r *models.OfferCharge) {
		r.Status = models.OfferChargeStatusFailed
		r.FailureReason = reason
	})
}

func (f *fakeOfferChargeRepo) GetByIntentAndType(originalIntentID, offerType string) (*models.OfferCharge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.charges[offerKey(originalIntentID, offerType)]; ok {
		return r, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeOfferChargeRepo) update(id uint, mutate func(*models.OfferCharge)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.charges {
		if r.ID == id {
			mutate(r)
			return nil
		}
	}
	return errors.New("not found")
}

// fakeFunnelEventRepo records analytics rows.
type fakeFunnelEventRepo struct {
	mu     sync.Mutex
	events []models.FunnelEvent
}

func (f *fakeFunnelEventRepo) Create(event *models.FunnelEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeFunnelEventRepo) ListRecent(limit int) ([]models.FunnelEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FunnelEvent(nil), f.events...), nil
}

func (f *fakeFunnelEventRepo) ListSince(since time.Time) ([]models.FunnelEvent, error) {
	return f.ListRecent(0)
}

type testEnv struct {
	provider    *stubProvider
	orders      *fakeOrderRepo
	webhooks    *fakeWebhookRepo
	charges     *fakeOfferChargeRepo
	funnelEvent *fakeFunnelEventRepo
}

// newTestApp wires the API handlers against in-memory fakes and the static
// product registry (no CMS client configured).
func newTestApp(t *testing.T) (*fiber.App, *testEnv) {
	t.Helper()

	env := &testEnv{
		provider:    newStubProvider(),
		orders:      newFakeOrderRepo(),
		webhooks:    newFakeWebhookRepo(),
		charges:     newFakeOfferChargeRepo(),
		funnelEvent: &fakeFunnelEventRepo{},
	}

	InitializeControllers(env.provider, nil, catalog.NewService(nil), &repository.Repositories{
		Order:       env.orders,
		OfferCharge: env.charges,
		Webhook:     env.webhooks,
		FunnelEvent: env.funnelEvent,
	})

	app := fiber.New()
	app.Post("/api/manage-payment-intent", HandleManagePaymentIntent)
	app.Post("/api/purchase-upsell", HandlePurchaseUpsell)
	app.Post("/api/log-event", HandleLogEvent)
	app.Post("/api/webhooks/stripe", HandleStripeWebhook)

	return app, env
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}
