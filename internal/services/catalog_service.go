package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lmcmotors/internal/models"
	"lmcmotors/internal/repositories"
)

// VehicleFilter restricts a catalog listing. Type is an exact match against
// the vehicle type enum; Price is an inclusive band of the form "min-max" or
// an open-ended "min-". Empty or "all" values disable the respective filter.
type VehicleFilter struct {
	Type  string
	Price string
}

// CatalogService handles business logic for the vehicle catalog.
type CatalogService struct {
	repo repositories.VehicleRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.VehicleRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func decodeVehicle(doc repositories.VehicleDocument) (models.Vehicle, error) {
	id, err := strconv.Atoi(doc.ID)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("vehicle document has non-numeric key %q: %w", doc.ID, err)
	}
	var data models.VehicleData
	if err := json.Unmarshal(doc.Data, &data); err != nil {
		return models.Vehicle{}, fmt.Errorf("failed to decode vehicle %s: %w", doc.ID, err)
	}
	return data.Vehicle(id), nil
}

// parsePriceRange parses "min-max" or open-ended "min-" into an inclusive
// band. hasMax is false for the open-ended form.
func parsePriceRange(s string) (min, max float64, hasMax bool, err error) {
	parts := strings.SplitN(s, "-", 2)
	min, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid price filter %q", s)
	}
	if len(parts) == 2 && parts[1] != "" {
		max, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid price filter %q", s)
		}
		return min, max, true, nil
	}
	return min, 0, false, nil
}

// List returns all vehicles, optionally restricted by filter. The price band
// is applied in memory after the fetch. A storage failure is returned to the
// caller; callers serving best-effort pages may degrade to an empty list.
func (s *CatalogService) List(filter *VehicleFilter) ([]models.Vehicle, error) {
	docs, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]models.Vehicle, 0, len(docs))
	for _, doc := range docs {
		v, err := decodeVehicle(doc)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })

	if filter == nil {
		return vehicles, nil
	}

	if filter.Type != "" && filter.Type != "all" {
		filtered := vehicles[:0]
		for _, v := range vehicles {
			if string(v.Type) == filter.Type {
				filtered = append(filtered, v)
			}
		}
		vehicles = filtered
	}

	if filter.Price != "" && filter.Price != "all" {
		min, max, hasMax, err := parsePriceRange(filter.Price)
		if err != nil {
			return nil, err
		}
		filtered := vehicles[:0]
		for _, v := range vehicles {
			if v.Price < min {
				continue
			}
			if hasMax && v.Price > max {
				continue
			}
			filtered = append(filtered, v)
		}
		vehicles = filtered
	}

	return vehicles, nil
}

// GetByID retrieves a single vehicle by its numeric id.
func (s *CatalogService) GetByID(id int) (*models.Vehicle, error) {
	doc, err := s.repo.GetByID(strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	v, err := decodeVehicle(*doc)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create stores a new vehicle, assigning id = 1 + the highest existing id
// (0 when the collection is empty). Two concurrent callers can compute the
// same id; a single writer is assumed, matching the documented limitation.
func (s *CatalogService) Create(data models.VehicleData) (*models.Vehicle, error) {
	vehicles, err := s.List(nil)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, v := range vehicles {
		if v.ID > maxID {
			maxID = v.ID
		}
	}
	newID := maxID + 1

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vehicle: %w", err)
	}
	if err := s.repo.Create(&repositories.VehicleDocument{ID: strconv.Itoa(newID), Data: body}); err != nil {
		return nil, err
	}

	vehicle := data.Vehicle(newID)
	return &vehicle, nil
}

// Update applies a shallow partial merge onto the stored document, then
// re-reads and returns the merged record. Absent ids fail with
// repositories.ErrVehicleNotFound.
func (s *CatalogService) Update(id int, patch map[string]interface{}) (*models.Vehicle, error) {
	key := strconv.Itoa(id)
	doc, err := s.repo.GetByID(key)
	if err != nil {
		return nil, err
	}

	var current map[string]interface{}
	if err := json.Unmarshal(doc.Data, &current); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle %s: %w", key, err)
	}

	// The id lives in the document key, never in the body.
	delete(patch, "id")
	for field, value := range patch {
		current[field] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vehicle %s: %w", key, err)
	}
	if err := s.repo.Save(&repositories.VehicleDocument{ID: key, Data: merged}); err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Delete removes a vehicle by id, failing with
// repositories.ErrVehicleNotFound when absent.
func (s *CatalogService) Delete(id int) error {
	return s.repo.Delete(strconv.Itoa(id))
}

// ListAllIDs returns every vehicle id in ascending order. Used to precompute
// static detail pages.
func (s *CatalogService) ListAllIDs() ([]int, error) {
	docs, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle ids: %w", err)
	}
	ids := make([]int, 0, len(docs))
	for _, doc := range docs {
		id, err := strconv.Atoi(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("vehicle document has non-numeric key %q: %w", doc.ID, err)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// Featured returns the first limit vehicles of the unfiltered listing.
func (s *CatalogService) Featured(limit int) ([]models.Vehicle, error) {
	vehicles, err := s.List(nil)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(vehicles) > limit {
		vehicles = vehicles[:limit]
	}
	return vehicles, nil
}

// Inventory returns the constrained vehicle projection for the given type,
// matched case-insensitively so the finder's lower-cased types ("sedan")
// find catalog entries ("Sedan"). This is the contract the recommendation
// engine's inventory tool relies on.
func (s *CatalogService) Inventory(vehicleType string) ([]models.InventoryItem, error) {
	vehicles, err := s.List(nil)
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(vehicles))
	for _, v := range vehicles {
		if vehicleType != "" && !strings.EqualFold(string(v.Type), vehicleType) {
			continue
		}
		items = append(items, models.InventoryItem{
			ID:      v.ID,
			Make:    v.Make,
			Model:   v.Model,
			Year:    v.Year,
			Price:   v.Price,
			Mileage: v.Mileage,
			Type:    string(v.Type),
		})
	}
	return items, nil
}
