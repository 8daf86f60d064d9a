package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/usercontext"
)

func newDashboardApp(t *testing.T, user usercontext.UserContext) (*fiber.App, *testEnv) {
	t.Helper()

	_, env := newTestApp(t)

	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyUserContext, user)
		return HandleDashboard(c)
	})
	return app, env
}

func TestHandleDashboard_ListsCustomerOrders(t *testing.T) {
	user := usercontext.UserContext{Email: "buyer@example.com", Name: "Jamie", IsLoggedIn: true}
	app, env := newDashboardApp(t, user)

	_, _, err := env.orders.CreateIfNotExists(&models.Order{
		PaymentIntentID: "pi_1",
		CustomerEmail:   "buyer@example.com",
		ProductName:     "The Legacy Blueprint (Red Protocol Edition)",
		AmountTotal:     5400,
		HasBump:         true,
		Status:          models.OrderStatusPaid,
	})
	require.NoError(t, err)
	_, _, err = env.orders.CreateIfNotExists(&models.Order{
		PaymentIntentID: "pi_2",
		CustomerEmail:   "someone-else@example.com",
		ProductName:     "Other Product",
		AmountTotal:     1000,
	})
	require.NoError(t, err)

	resp, body := getPage(t, app, "/dashboard")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The Legacy Blueprint (Red Protocol Edition)")
	assert.Contains(t, body, "$54.00")
	assert.NotContains(t, body, "Other Product")
}

func TestHandleDashboard_EmptyState(t *testing.T) {
	user := usercontext.UserContext{Email: "new@example.com", IsLoggedIn: true}
	app, _ := newDashboardApp(t, user)

	resp, body := getPage(t, app, "/dashboard")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No purchases found for new@example.com")
}
