package domain

import (
	"fmt"
	"time"
)

type VehicleType string

const (
	VehicleTypeCar       VehicleType = "CAR"
	VehicleTypeMotorbike VehicleType = "MOTORBIKE"
	VehicleTypeTruck     VehicleType = "TRUCK"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusRented    VehicleStatus = "RENTED"
)

// MaxDailyRateCents caps the daily rate at 10,000.00.
const MaxDailyRateCents = 1_000_000

type Vehicle struct {
	ID             string      `json:"id" validate:"required,entityid"`
	Type           VehicleType `json:"type" validate:"required,oneof=CAR MOTORBIKE TRUCK"`
	Brand          string      `json:"brand" validate:"required,min=2,max=50"`
	Model          string      `json:"model" validate:"required,max=50"`
	Year           int         `json:"year" validate:"required,min=1990,max=2030"`
	DailyRateCents int64       `json:"daily_rate_cents" validate:"gt=0,lte=1000000"`
	ImageKey       string      `json:"image_key,omitempty"`
	CreatedOn      time.Time   `json:"created_on"`

	// Exactly one of these is set, matching Type.
	Car       *CarSpec       `json:"car,omitempty" validate:"omitempty"`
	Motorbike *MotorbikeSpec `json:"motorbike,omitempty" validate:"omitempty"`
	Truck     *TruckSpec     `json:"truck,omitempty" validate:"omitempty"`
}

type CarSpec struct {
	Doors        int    `json:"doors" validate:"oneof=2 3 4 5"`
	FuelType     string `json:"fuel_type" validate:"oneof=PETROL DIESEL ELECTRIC HYBRID"`
	Transmission string `json:"transmission" validate:"oneof=MANUAL AUTOMATIC CVT"`
}

type MotorbikeSpec struct {
	EngineCC int    `json:"engine_cc" validate:"min=50,max=2000"`
	BikeType string `json:"bike_type" validate:"oneof=SPORT CRUISER TOURING ADVENTURE STANDARD"`
	HasABS   bool   `json:"has_abs"`
}

type TruckSpec struct {
	LoadCapacityTonnes float64 `json:"load_capacity_tonnes" validate:"gt=0,lte=50"`
	TruckType          string  `json:"truck_type" validate:"oneof=LIGHT MEDIUM HEAVY BOX FLATBED"`
	HydraulicLift      bool    `json:"hydraulic_lift"`
}

// Label returns a short human-readable description, e.g. "2022 Toyota Corolla".
func (v *Vehicle) Label() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Brand, v.Model)
}
