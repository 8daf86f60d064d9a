package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleManagePaymentIntent_CreatesIntentWithBump(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug": "legacy-blueprint",
		"includeBump": true,
		"userEmail":   "buyer@example.com",
		"userName":    "Jamie Buyer",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5400), body["amount"])
	assert.NotEmpty(t, body["clientSecret"])
	assert.NotEmpty(t, body["paymentIntentId"])
}

func TestHandleManagePaymentIntent_UpdatesInPlace(t *testing.T) {
	app, env := newTestApp(t)

	_, first := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug": "legacy-blueprint",
		"includeBump": false,
		"userEmail":   "buyer@example.com",
	})
	intentID := first["paymentIntentId"].(string)

	resp, second := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug":     "legacy-blueprint",
		"includeBump":     true,
		"userEmail":       "buyer@example.com",
		"paymentIntentId": intentID,
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, intentID, second["paymentIntentId"])
	assert.Equal(t, float64(5400), second["amount"])
	assert.Len(t, env.provider.intents, 1)
}

func TestHandleManagePaymentIntent_RejectsInvalidEmail(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug": "legacy-blueprint",
		"userEmail":   "not-an-email",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleManagePaymentIntent_BlankSlugIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug": "   ",
		"userEmail":   "buyer@example.com",
	})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", body["error"])
}

func TestHandleManagePaymentIntent_UnknownSlugServesDefaultProduct(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/manage-payment-intent", fiber.Map{
		"productSlug": "no-such-funnel",
		"userEmail":   "buyer@example.com",
	})

	// Catalog policy: unknown slugs degrade to the default product instead
	// of breaking the checkout.
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3700), body["amount"])
}
