package handlers

import (
	"errors"
	"fmt"
	"log"

	"lmcmotors/internal/models"
	"lmcmotors/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FinderHandler handles HTTP requests for the AI-assisted vehicle finder.
type FinderHandler struct {
	service  *services.RecommendationService
	validate *validator.Validate
}

// NewFinderHandler creates a new FinderHandler.
func NewFinderHandler(service *services.RecommendationService) *FinderHandler {
	return &FinderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the finder routes with the Fiber app.
func (h *FinderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/recommendations", h.HandleRecommend)
}

// HandleRecommend runs the recommendation flow for a budget and vehicle
// type. An empty recommendations array is a valid response; a
// RecommendationError is not.
func (h *FinderHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing recommendation request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	recommendations, err := h.service.Recommend(c.Context(), req.Budget, req.Type)
	if err != nil {
		log.Printf("Error generating recommendations: %v", err)
		var recErr *services.RecommendationError
		if errors.As(err, &recErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Could not generate recommendations",
				"error":   recErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate recommendations",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"recommendations": recommendations,
	})
}
