package repositories

import "errors"

// ErrVehicleNotFound is returned when a vehicle document id is absent from
// the collection.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleDocument is one row of the "vehicles" document collection. The key
// is the decimal string of the numeric vehicle id and Data is the JSON body
// of the vehicle minus its id.
type VehicleDocument struct {
	ID   string `gorm:"primaryKey;type:varchar(32)"`
	Data []byte `gorm:"type:text"`
}

// TableName keeps the collection name stable across drivers.
func (VehicleDocument) TableName() string {
	return "vehicles"
}

// VehicleRepository defines the interface for vehicle document access.
type VehicleRepository interface {
	GetAll() ([]VehicleDocument, error)
	GetByID(id string) (*VehicleDocument, error)
	Create(doc *VehicleDocument) error
	Save(doc *VehicleDocument) error
	Delete(id string) error
}
