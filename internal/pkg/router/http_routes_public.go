package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/app/controllers"
	"github.com/funnelforge/funnelforge/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/api/webhooks/stripe", controllers.HandleStripeWebhook)
}
