package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"

	"github.com/funnelforge/funnelforge/internal/pkg/session"
	"github.com/funnelforge/funnelforge/internal/pkg/usercontext"
)

// HandleSignInPage renders the dashboard sign-in page. Customers who bought
// via guest checkout authenticate here with the OAuth account matching their
// purchase email.
func HandleSignInPage(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return c.Render("sign-in", fiber.Map{
		"Title":       "Sign in",
		"Flash":       flash.Get(c),
		"PrefillMail": c.Query("email"),
		"User":        usercontext.GetUserContext(c),
	}, "layouts/main")
}

// HandleOAuthBegin starts the provider flow for /auth/:provider.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and creates the app session.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("Sign-in failed: %v", err),
		}
		return flash.WithError(c, fm).Redirect("/sign-in")
	}

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Your account did not share an email address",
		}
		return flash.WithError(c, fm).Redirect("/sign-in")
	}

	name := firstNonEmpty(u.Name, u.NickName, email)
	if err := session.SetSessionValue(c, usercontext.SessionKeyEmail, email); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}
		return flash.WithError(c, fm).Redirect("/sign-in")
	}
	if err := session.SetSessionValue(c, usercontext.SessionKeyName, name); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}
		return flash.WithError(c, fm).Redirect("/sign-in")
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// HandleLogout drops the session and returns to the sign-in page.
func HandleLogout(c *fiber.Ctx) error {
	if err := gothfiber.Logout(c); err != nil {
		// The OAuth state session may already be gone; the app session is
		// what actually logs the customer out.
		_ = err
	}
	if err := session.DestroySession(c); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "You are signed out",
	}
	return flash.WithSuccess(c, fm).Redirect("/sign-in")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
