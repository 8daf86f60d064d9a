package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

func seedPaidIntent(env *testEnv, id string) {
	env.provider.seedIntent(&payments.Intent{
		ID:              id,
		Status:          payments.IntentStatusSucceeded,
		CustomerID:      "cus_test",
		PaymentMethodID: "pm_test",
		Metadata: map[string]string{
			payments.MetaProductSlug: "legacy-blueprint",
		},
	})
}

func TestHandlePurchaseUpsell_ChargesOnce(t *testing.T) {
	app, env := newTestApp(t)
	seedPaidIntent(env, "pi_original")

	resp, body := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_original",
		"type":                    "oto",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["newOrderId"])
	assert.Equal(t, 1, env.provider.offSessionCalls)

	// Second purchase attempt must not charge again.
	resp, body = postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_original",
		"type":                    "oto",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, env.provider.offSessionCalls)
}

func TestHandlePurchaseUpsell_MissingIntentID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"type": "oto",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing Transaction ID", body["error"])
}

func TestHandlePurchaseUpsell_IncompleteOriginalPayment(t *testing.T) {
	app, env := newTestApp(t)
	env.provider.seedIntent(&payments.Intent{
		ID:     "pi_unpaid",
		Status: "requires_payment_method",
	})

	resp, body := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_unpaid",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Initial payment incomplete", body["error"])
	assert.Equal(t, 0, env.provider.offSessionCalls)
}

func TestHandlePurchaseUpsell_InFlightChargeConflicts(t *testing.T) {
	app, env := newTestApp(t)
	seedPaidIntent(env, "pi_original")

	// Simulate a concurrent request holding the claim row.
	_, created, err := env.charges.BeginCharge("pi_original", "oto")
	require.NoError(t, err)
	require.True(t, created)

	resp, _ := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_original",
		"type":                    "oto",
	})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, 0, env.provider.offSessionCalls)
}

func TestHandlePurchaseUpsell_FailedAttemptCanRetry(t *testing.T) {
	app, env := newTestApp(t)
	seedPaidIntent(env, "pi_original")

	record, _, err := env.charges.BeginCharge("pi_original", "oto")
	require.NoError(t, err)
	require.NoError(t, env.charges.MarkFailed(record.ID, "card declined"))

	resp, body := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_original",
		"type":                    "oto",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, env.provider.offSessionCalls)

	stored, err := env.charges.GetByIntentAndType("pi_original", "oto")
	require.NoError(t, err)
	assert.Equal(t, models.OfferChargeStatusSucceeded, stored.Status)
}

func TestHandlePurchaseUpsell_InvalidOfferType(t *testing.T) {
	app, env := newTestApp(t)
	seedPaidIntent(env, "pi_original")

	resp, body := postJSON(t, app, "/api/purchase-upsell", fiber.Map{
		"originalPaymentIntentId": "pi_original",
		"type":                    "mega-offer",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid offer type", body["error"])
	assert.Equal(t, 0, env.provider.offSessionCalls)
}
