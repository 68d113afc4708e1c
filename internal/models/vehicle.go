// internal/models/vehicle.go
package models

// VehicleSummary is the read-only projection of a vehicles row the assistant renders.
type VehicleSummary struct {
	ID           string  `json:"id" db:"id"`
	Make         string  `json:"make" db:"make"`
	Model        string  `json:"model" db:"model"`
	Year         int     `json:"year" db:"year"`
	Price        float64 `json:"price" db:"price"`
	Mileage      *int    `json:"mileage,omitempty" db:"mileage"`
	FuelType     string  `json:"fuelType" db:"fuel_type"`
	Transmission string  `json:"transmission" db:"transmission"`
	BodyType     string  `json:"bodyType,omitempty" db:"body_type"`
}

// VehicleStatusAvailable is the only status the assistant ever lists.
const VehicleStatusAvailable = "available"
