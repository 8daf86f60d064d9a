package controllers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/funnelforge/funnelforge/app/models"
	"github.com/funnelforge/funnelforge/internal/pkg/metrics/counter"
)

type logEventRequest struct {
	Event       string `json:"event"`
	ProductSlug string `json:"productSlug"`
	Status      string `json:"status"`
	Revenue     int64  `json:"revenue"`
}

// HandleLogEvent records a funnel analytics event. The endpoint is
// fire-and-forget: it acknowledges regardless of storage outcome so client
// tracking failures never disturb a checkout in progress.
func HandleLogEvent(c *fiber.Ctx) error {
	var req logEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"success": true})
	}

	log.Printf("[event] %s | slug: %s | status: %s | revenue: %d",
		req.Event, req.ProductSlug, req.Status, req.Revenue)

	if req.Event == "checkout_view" && req.ProductSlug != "" {
		if err := counter.AddCheckoutView(req.ProductSlug); err != nil {
			log.Printf("[event] view counter for %q not recorded: %v", req.ProductSlug, err)
		}
	}

	if repos != nil && repos.FunnelEvent != nil {
		payload, _ := json.Marshal(req)
		err := repos.FunnelEvent.Create(&models.FunnelEvent{
			EventID:      uuid.New().String(),
			EventType:    req.Event,
			ProductSlug:  req.ProductSlug,
			EventStatus:  req.Status,
			RevenueGross: req.Revenue,
			PayloadJSON:  string(payload),
		})
		if err != nil {
			log.Printf("[event] could not persist event %q: %v", req.Event, err)
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
