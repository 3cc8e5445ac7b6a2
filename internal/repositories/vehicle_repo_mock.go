package repositories

import (
	"fmt"
	"sync"
)

// MockVehicleRepository is an in-memory implementation of VehicleRepository.
type MockVehicleRepository struct {
	docs map[string]VehicleDocument
	mu   sync.RWMutex
}

// NewMockVehicleRepository creates a new instance of MockVehicleRepository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		docs: make(map[string]VehicleDocument),
	}
}

// GetAll returns all vehicle documents.
func (r *MockVehicleRepository) GetAll() ([]VehicleDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docList := make([]VehicleDocument, 0, len(r.docs))
	for _, d := range r.docs {
		docList = append(docList, d)
	}
	return docList, nil
}

// GetByID returns a vehicle document by its key.
func (r *MockVehicleRepository) GetByID(id string) (*VehicleDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return &doc, nil
}

// Create adds a new vehicle document.
func (r *MockVehicleRepository) Create(doc *VehicleDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.ID]; ok {
		return fmt.Errorf("vehicle with ID %s already exists", doc.ID)
	}
	r.docs[doc.ID] = *doc
	return nil
}

// Save replaces the body of an existing vehicle document.
func (r *MockVehicleRepository) Save(doc *VehicleDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.ID]; !ok {
		return ErrVehicleNotFound
	}
	r.docs[doc.ID] = *doc
	return nil
}

// Delete removes a vehicle document by its key.
func (r *MockVehicleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrVehicleNotFound
	}
	delete(r.docs, id)
	return nil
}
