package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GORMVehicleRepository is a GORM implementation of VehicleRepository.
type GORMVehicleRepository struct {
	db *gorm.DB
}

// NewGORMVehicleRepository creates a new instance of GORMVehicleRepository.
func NewGORMVehicleRepository(db *gorm.DB) *GORMVehicleRepository {
	return &GORMVehicleRepository{
		db: db,
	}
}

// GetAll retrieves every vehicle document from the collection.
func (r *GORMVehicleRepository) GetAll() ([]VehicleDocument, error) {
	var docs []VehicleDocument
	if err := r.db.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vehicles: %w", err)
	}
	return docs, nil
}

// GetByID retrieves a single vehicle document by its string key.
func (r *GORMVehicleRepository) GetByID(id string) (*VehicleDocument, error) {
	var doc VehicleDocument
	if err := r.db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle by ID %s: %w", id, err)
	}
	return &doc, nil
}

// Create inserts a new vehicle document. The caller assigns the key.
func (r *GORMVehicleRepository) Create(doc *VehicleDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Save replaces the body of an existing vehicle document.
func (r *GORMVehicleRepository) Save(doc *VehicleDocument) error {
	res := r.db.Model(&VehicleDocument{}).Where("id = ?", doc.ID).Update("data", doc.Data)
	if res.Error != nil {
		return fmt.Errorf("failed to save vehicle %s: %w", doc.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM does not report ErrRecordNotFound for updates, so we check
		// RowsAffected.
		return ErrVehicleNotFound
	}
	return nil
}

// Delete removes a vehicle document by its string key.
func (r *GORMVehicleRepository) Delete(id string) error {
	res := r.db.Delete(&VehicleDocument{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
