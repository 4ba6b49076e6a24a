package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"

	"gopkg.in/yaml.v3"
)

// FleetVehicle is one entry of a fleet YAML file. Only the detail fields
// matching Type are used.
type FleetVehicle struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Brand          string `yaml:"brand"`
	Model          string `yaml:"model"`
	Year           int    `yaml:"year"`
	DailyRateCents int64  `yaml:"daily_rate_cents"`

	Doors        int    `yaml:"doors"`
	FuelType     string `yaml:"fuel_type"`
	Transmission string `yaml:"transmission"`

	EngineCC int    `yaml:"engine_cc"`
	BikeType string `yaml:"bike_type"`
	HasABS   bool   `yaml:"has_abs"`

	LoadCapacityTonnes float64 `yaml:"load_capacity_tonnes"`
	TruckType          string  `yaml:"truck_type"`
	HydraulicLift      bool    `yaml:"hydraulic_lift"`
}

type fleetFile struct {
	Vehicles []FleetVehicle `yaml:"vehicles"`
}

func (f FleetVehicle) toDomain() domain.Vehicle {
	v := domain.Vehicle{
		ID:             f.ID,
		Type:           domain.VehicleType(strings.ToUpper(f.Type)),
		Brand:          f.Brand,
		Model:          f.Model,
		Year:           f.Year,
		DailyRateCents: f.DailyRateCents,
	}
	switch v.Type {
	case domain.VehicleTypeCar:
		v.Car = &domain.CarSpec{Doors: f.Doors, FuelType: f.FuelType, Transmission: f.Transmission}
	case domain.VehicleTypeMotorbike:
		v.Motorbike = &domain.MotorbikeSpec{EngineCC: f.EngineCC, BikeType: f.BikeType, HasABS: f.HasABS}
	case domain.VehicleTypeTruck:
		v.Truck = &domain.TruckSpec{LoadCapacityTonnes: f.LoadCapacityTonnes, TruckType: f.TruckType, HydraulicLift: f.HydraulicLift}
	}
	return v
}

// LoadFleet reads vehicles from a YAML fleet file
func LoadFleet(path string) ([]domain.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet file: %w", err)
	}
	var ff fleetFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse fleet file: %w", err)
	}
	out := make([]domain.Vehicle, 0, len(ff.Vehicles))
	for _, fv := range ff.Vehicles {
		out = append(out, fv.toDomain())
	}
	return out, nil
}

// DemoFleet is the fleet added when no fleet file is given
func DemoFleet() []domain.Vehicle {
	entries := []FleetVehicle{
		{ID: "CAR001", Type: "CAR", Brand: "Toyota", Model: "Corolla", Year: 2022, DailyRateCents: 4500, Doors: 4, FuelType: "PETROL", Transmission: "AUTOMATIC"},
		{ID: "CAR002", Type: "CAR", Brand: "Tesla", Model: "Model 3", Year: 2023, DailyRateCents: 9500, Doors: 4, FuelType: "ELECTRIC", Transmission: "AUTOMATIC"},
		{ID: "BIKE001", Type: "MOTORBIKE", Brand: "Honda", Model: "CB500F", Year: 2021, DailyRateCents: 3500, EngineCC: 471, BikeType: "STANDARD", HasABS: true},
		{ID: "TRUCK001", Type: "TRUCK", Brand: "Ford", Model: "Transit", Year: 2020, DailyRateCents: 12000, LoadCapacityTonnes: 3.5, TruckType: "LIGHT"},
	}
	out := make([]domain.Vehicle, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.toDomain())
	}
	return out
}

// EnsureStaff creates the configured staff account unless it already exists
func EnsureStaff(ctx context.Context, users service.UserService, cfg config.SeedConfig) (bool, error) {
	if cfg.StaffID == "" {
		return false, fmt.Errorf("seed staff id is required")
	}
	if _, err := users.GetUser(ctx, cfg.StaffID); err == nil {
		logger.Info("Staff account already exists", "userID", cfg.StaffID)
		return false, nil
	}

	_, err := users.CreateUser(ctx, service.NewUserInput{
		ID:          cfg.StaffID,
		Password:    cfg.StaffPassword,
		Role:        domain.RoleStaff,
		Name:        cfg.StaffName,
		ContactInfo: cfg.StaffContact,
		Staff:       &domain.StaffProfile{EmployeeID: cfg.StaffID, Position: domain.StaffPositionAdmin},
	})
	if err != nil {
		return false, err
	}
	logger.Info("Staff account created", "userID", cfg.StaffID)
	return true, nil
}

// AddVehicles adds each vehicle, skipping ids that already exist
func AddVehicles(ctx context.Context, vehicles service.VehicleService, fleet []domain.Vehicle) (int, error) {
	added := 0
	for i := range fleet {
		err := vehicles.AddVehicle(ctx, &fleet[i])
		if errors.Is(err, domain.ErrDuplicateID) {
			logger.Debug("Vehicle already exists", "vehicleID", fleet[i].ID)
			continue
		}
		if err != nil {
			return added, fmt.Errorf("vehicle %s: %w", fleet[i].ID, err)
		}
		added++
	}
	return added, nil
}
