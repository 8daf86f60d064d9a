package controllers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/catalog"
	"github.com/funnelforge/funnelforge/internal/pkg/env"
	"github.com/funnelforge/funnelforge/internal/pkg/mail"
	"github.com/funnelforge/funnelforge/internal/pkg/metrics/counter"
	"github.com/funnelforge/funnelforge/internal/pkg/payments"
)

// HandleStripeWebhook verifies and processes payment provider events. After
// the signature checks out the endpoint always acknowledges with 200, even
// when downstream fulfillment fails, so the provider does not retry a
// delivery we have already stored.
func HandleStripeWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Printf("ERROR: STRIPE_WEBHOOK_SECRET is not set, rejecting webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook not configured"})
	}

	payload := c.Body()
	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.Get("Stripe-Signature"),
		secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Printf("[webhook] signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
	}

	record := &models.WebhookEvent{
		Provider:        "stripe",
		ProviderEventID: event.ID,
		EventType:       string(event.Type),
		PayloadJSON:     string(payload),
		SignatureValid:  true,
	}
	created, record, err := repos.Webhook.CreateIfNotExists(record)
	if err != nil {
		// Without the dedupe row a redelivery cannot be told apart from a
		// first delivery. Nothing has been fulfilled yet, so fail and let
		// the provider retry.
		log.Printf("[webhook] could not store event %s: %v", event.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	if !created {
		log.Printf("[webhook] event %s already received, skipping", event.ID)
		return c.JSON(fiber.Map{"received": true})
	}

	var processingErr string
	switch event.Type {
	case "payment_intent.succeeded":
		if err := processPaymentSucceeded(event.Data.Raw); err != nil {
			processingErr = err.Error()
			log.Printf("[webhook] processing %s failed: %v", event.ID, err)
		}
	default:
		log.Printf("[webhook] ignoring event type %s", event.Type)
	}

	if err := repos.Webhook.MarkProcessed(record.ID, processingErr); err != nil {
		log.Printf("[webhook] could not mark event %s processed: %v", event.ID, err)
	}

	return c.JSON(fiber.Map{"received": true})
}

func processPaymentSucceeded(raw json.RawMessage) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return err
	}

	slug := intent.Metadata[payments.MetaProductSlug]
	productName := intent.Metadata[payments.MetaProductName]
	customerName := intent.Metadata[payments.MetaCustomerName]
	hasBump := intent.Metadata[payments.MetaHasBump] == "true"
	email := intent.ReceiptEmail

	metadataJSON, _ := json.Marshal(intent.Metadata)

	order := &models.Order{
		PaymentIntentID: intent.ID,
		CustomerEmail:   email,
		CustomerName:    customerName,
		ProductSlug:     slug,
		ProductName:     productName,
		AmountTotal:     intent.Amount,
		Currency:        string(intent.Currency),
		HasBump:         hasBump,
		Status:          models.OrderStatusPaid,
		MetadataJSON:    string(metadataJSON),
	}
	created, _, err := repos.Order.CreateIfNotExists(order)
	if err != nil {
		return err
	}
	if !created {
		log.Printf("[webhook] order for intent %s already recorded", intent.ID)
		return nil
	}

	log.Printf("[webhook] recorded order for %s | product: %s | total: %d", email, slug, intent.Amount)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Fulfillment side effects are best-effort; the local order row is the
	// source of truth and already exists.
	if cmsClient != nil {
		err := cmsClient.CreateOrder(ctx, catalog.OrderRecord{
			PaymentIntentID: intent.ID,
			CustomerEmail:   email,
			CustomerName:    customerName,
			AmountTotal:     intent.Amount,
			Products:        map[string]string{"slug": slug, "name": productName},
			PaymentStatus:   "succeeded",
		})
		if err != nil {
			log.Printf("[webhook] content store order for %s not created: %v", intent.ID, err)
		}
	}

	if email != "" {
		if err := mail.SendReceipt(email, customerName, productName); err != nil {
			log.Printf("[webhook] receipt mail to %s failed: %v", email, err)
		}
	}

	if slug != "" {
		if err := counter.AddPurchase(slug); err != nil {
			log.Printf("[webhook] purchase counter for %q not recorded: %v", slug, err)
		}
	}

	return nil
}
