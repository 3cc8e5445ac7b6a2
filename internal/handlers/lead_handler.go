package handlers

import (
	"log"

	"lmcmotors/internal/models"
	"lmcmotors/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LeadHandler handles HTTP requests for inquiry and pre-booking submissions.
type LeadHandler struct {
	service *services.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{
		service: service,
	}
}

// RegisterRoutes registers the lead routes with the Fiber app.
func (h *LeadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/inquiries", h.HandleSubmitInquiry)
	router.Post("/prebookings", h.HandleSubmitPrebooking)
	router.Get("/prebookings/slots", h.HandlePickupSlots)
}

// HandleSubmitInquiry accepts a general inquiry about a vehicle.
func (h *LeadHandler) HandleSubmitInquiry(c *fiber.Ctx) error {
	var lead models.InquiryLead
	if err := c.BodyParser(&lead); err != nil {
		log.Printf("Error parsing inquiry request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, errs, err := h.service.SubmitInquiry(lead)
	if err != nil {
		log.Printf("Error submitting inquiry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit inquiry",
			"error":   err.Error(),
		})
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error: Please check the form fields.",
			"errors":  errs,
		})
	}

	return c.JSON(fiber.Map{
		"message":   result.Message,
		"reference": result.Reference,
	})
}

// HandleSubmitPrebooking accepts a vehicle pre-booking. Webhook delivery is
// best-effort inside the service; this handler only ever sees a captured
// lead or a validation failure.
func (h *LeadHandler) HandleSubmitPrebooking(c *fiber.Ctx) error {
	var lead models.PrebookingLead
	if err := c.BodyParser(&lead); err != nil {
		log.Printf("Error parsing pre-booking request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, errs, err := h.service.SubmitPrebooking(c.Context(), lead)
	if err != nil {
		log.Printf("Error submitting pre-booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit pre-booking",
			"error":   err.Error(),
		})
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error: Please check the form fields.",
			"errors":  errs,
		})
	}

	return c.JSON(fiber.Map{
		"message":   result.Message,
		"reference": result.Reference,
	})
}

// HandlePickupSlots returns the enumerated half-hour pickup labels the
// pre-booking form offers.
func (h *LeadHandler) HandlePickupSlots(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"slots": models.PickupSlots(),
	})
}
