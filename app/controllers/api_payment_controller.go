package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

type managePaymentIntentRequest struct {
	ProductSlug     string `json:"productSlug" validate:"required"`
	IncludeBump     bool   `json:"includeBump"`
	UserEmail       string `json:"userEmail" validate:"required,email"`
	UserName        string `json:"userName" validate:"max=255"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// HandleManagePaymentIntent creates or updates the payment intent for a
// checkout attempt. The total is always recomputed server-side; any amount a
// client sends is ignored.
func HandleManagePaymentIntent(c *fiber.Ctx) error {
	var req managePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := intentManager.CreateOrUpdate(ctx, payments.CreateOrUpdateInput{
		ProductSlug:   req.ProductSlug,
		IncludeBump:   req.IncludeBump,
		CustomerEmail: req.UserEmail,
		CustomerName:  req.UserName,
		IntentID:      req.PaymentIntentID,
	})
	if err != nil {
		if errors.Is(err, payments.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		log.Printf("[api] manage-payment-intent failed for %q: %v", req.ProductSlug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": payments.ProviderMessage(err),
		})
	}

	log.Printf("[api] intent %s for %s | total: %d", result.IntentID, req.UserEmail, result.Amount)

	resp := fiber.Map{
		"clientSecret":    result.ClientSecret,
		"paymentIntentId": result.IntentID,
		"amount":          result.Amount,
	}
	if len(result.ShippingCountries) > 0 {
		resp["shippingCountries"] = result.ShippingCountries
	}
	return c.JSON(resp)
}
