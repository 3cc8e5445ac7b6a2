package models

// VehicleType is the closed set of catalog vehicle types.
type VehicleType string

const (
	TypeSUV   VehicleType = "SUV"
	TypeSedan VehicleType = "Sedan"
	TypeTruck VehicleType = "Truck"
)

// Specification is a single name/value pair on a vehicle's spec sheet.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Vehicle represents a vehicle in the dealership catalog. The numeric ID is
// assigned at creation time and doubles as the document key (as a decimal
// string) in the persisted collection.
type Vehicle struct {
	ID             int             `json:"id"`
	Make           string          `json:"make" validate:"required"`
	Model          string          `json:"model" validate:"required"`
	Year           int             `json:"year" validate:"required,gte=0"`
	Price          float64         `json:"price" validate:"gte=0"`
	Mileage        int             `json:"mileage" validate:"gte=0"`
	Description    string          `json:"description" validate:"omitempty,max=2000"`
	Type           VehicleType     `json:"type" validate:"required,oneof=SUV Sedan Truck"`
	Images         []string        `json:"images"`
	Specifications []Specification `json:"specifications"`
}

// VehicleData is a vehicle without its identity. It is the shape stored as the
// document body and the shape accepted by the create operation.
type VehicleData struct {
	Make           string          `json:"make" validate:"required"`
	Model          string          `json:"model" validate:"required"`
	Year           int             `json:"year" validate:"required,gte=0"`
	Price          float64         `json:"price" validate:"gte=0"`
	Mileage        int             `json:"mileage" validate:"gte=0"`
	Description    string          `json:"description" validate:"omitempty,max=2000"`
	Type           VehicleType     `json:"type" validate:"required,oneof=SUV Sedan Truck"`
	Images         []string        `json:"images"`
	Specifications []Specification `json:"specifications"`
}

// Data returns the document body of v, i.e. the vehicle minus its id.
func (v Vehicle) Data() VehicleData {
	return VehicleData{
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		Price:          v.Price,
		Mileage:        v.Mileage,
		Description:    v.Description,
		Type:           v.Type,
		Images:         v.Images,
		Specifications: v.Specifications,
	}
}

// Vehicle assembles a full Vehicle from the data and an assigned id.
func (d VehicleData) Vehicle(id int) Vehicle {
	return Vehicle{
		ID:             id,
		Make:           d.Make,
		Model:          d.Model,
		Year:           d.Year,
		Price:          d.Price,
		Mileage:        d.Mileage,
		Description:    d.Description,
		Type:           d.Type,
		Images:         d.Images,
		Specifications: d.Specifications,
	}
}
