package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"lmcmotors/internal/repositories"
	"lmcmotors/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public read-only catalog routes.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	vehicleRoutes := router.Group("/vehicles")
	vehicleRoutes.Get("/", h.HandleListVehicles)
	vehicleRoutes.Get("/featured", h.HandleFeaturedVehicles)
	vehicleRoutes.Get("/ids", h.HandleListVehicleIDs)
	vehicleRoutes.Get("/:id", h.HandleGetVehicleByID)
}

// HandleListVehicles lists vehicles, optionally filtered by type and an
// inclusive price band ("min-max" or "min-"). The public listing degrades to
// an empty page on storage failure; the error is logged, not surfaced.
func (h *CatalogHandler) HandleListVehicles(c *fiber.Ctx) error {
	filter := &services.VehicleFilter{
		Type:  c.Query("type"),
		Price: c.Query("price"),
	}

	vehicles, err := h.service.List(filter)
	if err != nil {
		log.Printf("Error listing vehicles: %v", err)
		return c.JSON(fiber.Map{
			"vehicles": []interface{}{},
		})
	}
	return c.JSON(fiber.Map{
		"vehicles": vehicles,
	})
}

// HandleFeaturedVehicles returns the first few vehicles of the catalog.
func (h *CatalogHandler) HandleFeaturedVehicles(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 4)
	vehicles, err := h.service.Featured(limit)
	if err != nil {
		log.Printf("Error listing featured vehicles: %v", err)
		return c.JSON(fiber.Map{
			"vehicles": []interface{}{},
		})
	}
	return c.JSON(fiber.Map{
		"vehicles": vehicles,
	})
}

// HandleListVehicleIDs returns every vehicle id, used to precompute static
// detail pages.
func (h *CatalogHandler) HandleListVehicleIDs(c *fiber.Ctx) error {
	ids, err := h.service.ListAllIDs()
	if err != nil {
		log.Printf("Error listing vehicle ids: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve vehicle ids",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"ids": ids,
	})
}

// HandleGetVehicleByID retrieves a single vehicle by its numeric id.
func (h *CatalogHandler) HandleGetVehicleByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Vehicle id must be numeric",
		})
	}

	vehicle, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Vehicle with ID %d not found", id),
			})
		}
		log.Printf("Error getting vehicle by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve vehicle",
			"error":   err.Error(),
		})
	}
	return c.JSON(vehicle)
}

// GalleryHandler serves the public gallery listing.
type GalleryHandler struct {
	store *repositories.GalleryStore
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(store *repositories.GalleryStore) *GalleryHandler {
	return &GalleryHandler{
		store: store,
	}
}

// RegisterRoutes registers the gallery routes with the Fiber app.
func (h *GalleryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/gallery", h.HandleListImages)
}

// HandleListImages returns all gallery images.
func (h *GalleryHandler) HandleListImages(c *fiber.Ctx) error {
	images, err := h.store.List()
	if err != nil {
		log.Printf("Error listing gallery images: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve gallery images",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"placeholderImages": images,
	})
}
