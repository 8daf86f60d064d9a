package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/funnelforge/funnelforge/app/controllers"
	"github.com/funnelforge/funnelforge/internal/pkg/env"
	"github.com/funnelforge/funnelforge/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/sign-in", controllers.HandleSignInPage)
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)

	// Funnel pages; the wildcard slug routes go last so fixed paths win.
	group.Get("/", controllers.HandleCheckoutPage)
	group.Get("/:slug", controllers.HandleCheckoutPage)
	group.Get("/:slug/upsell", controllers.HandleUpsellPage)
	group.Get("/:slug/downsell", controllers.HandleDownsellPage)
	group.Get("/:slug/success", controllers.HandleSuccessPage)
}
