package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/app/controllers"
	"github.com/funnelforge/funnelforge/app/repository"
	"github.com/funnelforge/funnelforge/internal/pkg/middleware"
	"github.com/funnelforge/funnelforge/internal/pkg/oauth"
	"github.com/funnelforge/funnelforge/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire controller dependencies from environment + repositories
	controllers.InitializeControllersFromEnv(repository.GetGlobalFactory().GetRepositories())

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
