package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/funnelforge/funnelforge/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max: 60,
		// The webhook route is registered outside this group; the payment
		// provider retries aggressively and must not be rate limited.
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	api.Post("/manage-payment-intent", controllers.HandleManagePaymentIntent)
	api.Post("/purchase-upsell", controllers.HandlePurchaseUpsell)
	api.Post("/log-event", controllers.HandleLogEvent)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
