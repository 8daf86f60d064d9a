package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/internal/pkg/metrics/counter"
	"github.com/funnelforge/funnelforge/internal/pkg/usercontext"
	"github.com/funnelforge/funnelforge/internal/pkg/viewmodel"
)

// HandleCheckoutPage renders the main checkout page for a funnel slug.
func HandleCheckoutPage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	product, source := catalogService.Lookup(c.Context(), slug)
	page := viewmodel.NewCheckoutPage(product, source, publishableKey())

	if err := counter.AddCheckoutView(product.ID); err != nil {
		log.Printf("[checkout] view counter for %q not recorded: %v", product.ID, err)
	}

	return c.Render("checkout", fiber.Map{
		"Page":  page,
		"Title": product.Checkout.Headline,
		"User":  usercontext.GetUserContext(c),
	}, "layouts/main")
}

// HandleUpsellPage renders the one-time offer shown right after payment. The
// original intent id arrives via the redirect query string.
func HandleUpsellPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	intentID := c.Query("payment_intent")

	product, _ := catalogService.Lookup(c.Context(), slug)
	page := viewmodel.NewUpsellPage(product, intentID)

	return c.Render("upsell", fiber.Map{
		"Page":  page,
		"Title": "Wait! Your order is not complete",
		"User":  usercontext.GetUserContext(c),
	}, "layouts/main")
}

// HandleDownsellPage renders the fallback offer after a declined upsell.
// Products without a downsell skip straight to the success page.
func HandleDownsellPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	intentID := c.Query("payment_intent")

	product, _ := catalogService.Lookup(c.Context(), slug)
	page, ok := viewmodel.NewDownsellPage(product, intentID)
	if !ok {
		return c.Redirect("/"+product.ID+"/success?payment_intent="+intentID, fiber.StatusSeeOther)
	}

	return c.Render("downsell", fiber.Map{
		"Page":  page,
		"Title": "One last chance",
		"User":  usercontext.GetUserContext(c),
	}, "layouts/main")
}

// HandleSuccessPage renders the order confirmation.
func HandleSuccessPage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	product, _ := catalogService.Lookup(c.Context(), slug)

	return c.Render("success", fiber.Map{
		"Product": product,
		"Title":   "Order confirmed",
		"User":    usercontext.GetUserContext(c),
	}, "layouts/main")
}
