package models

// RecommendationRequest carries the finder form input. The type values are
// lower-cased on the wire, unlike the catalog's VehicleType enum.
type RecommendationRequest struct {
	Budget float64 `json:"budget" validate:"required,gt=0"`
	Type   string  `json:"type" validate:"required,oneof=sedan truck suv"`
}

// Recommendation is one schema-validated entry of the model's output.
type Recommendation struct {
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Mileage     int     `json:"mileage"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// InventoryItem is the constrained vehicle projection exposed to the model
// through the inventory lookup tool.
type InventoryItem struct {
	ID      int     `json:"id"`
	Make    string  `json:"make"`
	Model   string  `json:"model"`
	Year    int     `json:"year"`
	Price   float64 `json:"price"`
	Mileage int     `json:"mileage"`
	Type    string  `json:"type"`
}
