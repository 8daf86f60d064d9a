package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/usercontext"
	"github.com/funnelforge/funnelforge/internal/pkg/viewmodel"
)

// HandleDashboard lists the signed-in customer's purchases. Orders are read
// from the local mirror, so the page works during provider outages.
func HandleDashboard(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	orders, err := repos.Order.GetByEmail(user.Email)
	if err != nil {
		log.Printf("[dashboard] order lookup for %s failed: %v", user.Email, err)
		orders = nil
	}

	var total int64
	rows := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		total += o.AmountTotal
		rows = append(rows, fiber.Map{
			"ProductName":   displayProductName(o),
			"AmountTotal":   viewmodel.FormatCents(o.AmountTotal),
			"HasBump":       o.HasBump,
			"Status":        o.Status,
			"PurchasedAt":   o.CreatedAt.Format("Jan 2, 2006"),
			"PaymentIntent": o.PaymentIntentID,
		})
	}

	return c.Render("dashboard", fiber.Map{
		"Title":      "Your purchases",
		"User":       user,
		"Orders":     rows,
		"OrderCount": len(orders),
		"TotalSpent": viewmodel.FormatCents(total),
		"Flash":      flash.Get(c),
	}, "layouts/main")
}

func displayProductName(o models.Order) string {
	if o.ProductName != "" {
		return o.ProductName
	}
	return o.ProductSlug
}
