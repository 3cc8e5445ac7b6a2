package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"lmcmotors/internal/middleware"
	"lmcmotors/internal/models"
	"lmcmotors/internal/repositories"
	"lmcmotors/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ManagerHandler is the command API: a single secret-authenticated endpoint
// that dispatches named commands to the catalog and gallery stores.
type ManagerHandler struct {
	catalog *services.CatalogService
	gallery *repositories.GalleryStore
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(catalog *services.CatalogService, gallery *repositories.GalleryStore) *ManagerHandler {
	return &ManagerHandler{
		catalog: catalog,
		gallery: gallery,
	}
}

// RegisterRoutes registers the command endpoint, guarded by the shared
// secret.
func (h *ManagerHandler) RegisterRoutes(router fiber.Router, secret string) {
	router.Post("/vehicle-manager", middleware.SecretRequired(secret), h.HandleCommand)
}

// managerRequest is the command envelope. Data doubles as the full vehicle
// payload for "add" and as the partial patch for "edit".
type managerRequest struct {
	Command   string                  `json:"command"`
	Data      json.RawMessage         `json:"data"`
	VehicleID string                  `json:"vehicleId"`
	ImageID   string                  `json:"imageId"`
	ImageData *models.ImageDescriptor `json:"imageData"`
}

// HandleCommand validates the command envelope and dispatches to the
// matching store operation. Creation commands answer 201, everything else
// 200; missing payload fields answer 400 and store failures 500.
func (h *ManagerHandler) HandleCommand(c *fiber.Ctx) error {
	var req managerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing command request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	switch req.Command {
	// Vehicle commands
	case "add":
		if len(req.Data) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Missing data for add command",
			})
		}
		var data models.VehicleData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Invalid vehicle data",
				"error":   err.Error(),
			})
		}
		vehicle, err := h.catalog.Create(data)
		if err != nil {
			return h.storeError(c, "add vehicle", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Vehicle added successfully",
			"vehicle": vehicle,
		})

	case "edit":
		if req.VehicleID == "" || len(req.Data) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Missing vehicleId or data for edit command",
			})
		}
		id, err := strconv.Atoi(req.VehicleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: vehicleId must be numeric",
			})
		}
		var patch map[string]interface{}
		if err := json.Unmarshal(req.Data, &patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Invalid vehicle data",
				"error":   err.Error(),
			})
		}
		vehicle, err := h.catalog.Update(id, patch)
		if err != nil {
			return h.storeError(c, fmt.Sprintf("update vehicle %d", id), err)
		}
		return c.JSON(fiber.Map{
			"message": "Vehicle updated successfully",
			"vehicle": vehicle,
		})

	case "delete":
		if req.VehicleID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Missing vehicleId for delete command",
			})
		}
		id, err := strconv.Atoi(req.VehicleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: vehicleId must be numeric",
			})
		}
		if err := h.catalog.Delete(id); err != nil {
			return h.storeError(c, fmt.Sprintf("delete vehicle %d", id), err)
		}
		return c.JSON(fiber.Map{
			"message": "Vehicle deleted successfully",
		})

	case "list":
		vehicles, err := h.catalog.List(nil)
		if err != nil {
			return h.storeError(c, "list vehicles", err)
		}
		return c.JSON(fiber.Map{
			"vehicles": vehicles,
		})

	// Gallery commands
	case "addGalleryImage":
		if req.ImageData == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Missing imageData for addGalleryImage command",
			})
		}
		image, err := h.gallery.Add(*req.ImageData)
		if err != nil {
			return h.storeError(c, "add gallery image", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Gallery image added successfully",
			"image":   image,
		})

	case "deleteGalleryImage":
		if req.ImageID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Bad Request: Missing imageId for deleteGalleryImage command",
			})
		}
		if err := h.gallery.Remove(req.ImageID); err != nil {
			return h.storeError(c, fmt.Sprintf("delete gallery image %s", req.ImageID), err)
		}
		return c.JSON(fiber.Map{
			"message": "Gallery image deleted successfully",
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid command",
		})
	}
}

// storeError maps store failures onto the command API's response contract:
// not-found ids answer 404, anything else a generic 500 carrying only the
// failure message.
func (h *ManagerHandler) storeError(c *fiber.Ctx, op string, err error) error {
	log.Printf("Command API error (%s): %v", op, err)
	if errors.Is(err, repositories.ErrVehicleNotFound) || errors.Is(err, repositories.ErrImageNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not Found",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal Server Error",
		"error":   err.Error(),
	})
}
