package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

type purchaseUpsellRequest struct {
	OriginalPaymentIntentID string `json:"originalPaymentIntentId" validate:"required"`
	Type                    string `json:"type"`
}

// HandlePurchaseUpsell charges a follow-up offer against the payment method
// stored during the original checkout.
func HandlePurchaseUpsell(c *fiber.Ctx) error {
	var req purchaseUpsellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing Transaction ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := followupManager.Charge(ctx, req.OriginalPaymentIntentID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInitialPaymentIncomplete):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Initial payment incomplete"})
		case errors.Is(err, payments.ErrMissingCustomerData):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing Customer Data"})
		case errors.Is(err, payments.ErrNoOfferPrice):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No price found for offer"})
		case errors.Is(err, payments.ErrInvalidOfferType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid offer type"})
		case errors.Is(err, payments.ErrChargeInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Purchase already in progress"})
		}
		log.Printf("[api] purchase-upsell failed for %s: %v", req.OriginalPaymentIntentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": payments.ProviderMessage(err),
		})
	}

	resp := fiber.Map{"success": true}
	if result.AlreadyPurchased {
		resp["message"] = "Already purchased"
	}
	if result.NewOrderID != "" {
		resp["newOrderId"] = result.NewOrderID
	}
	return c.JSON(resp)
}
