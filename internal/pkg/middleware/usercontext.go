package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/internal/pkg/session"
	"github.com/funnelforge/funnelforge/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext once per
// request so controllers never touch the session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	email := session.GetSessionValue(c, usercontext.SessionKeyEmail)
	name := session.GetSessionValue(c, usercontext.SessionKeyName)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		Email:      email,
		Name:       name,
		IsLoggedIn: email != "",
	})

	return c.Next()
}
