package main

import (
	"context"
	"flag"
	"log"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/backend"
	"fleetrent-backend/internal/seed"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	fleetPath := flag.String("fleet", "", "Optional YAML file of vehicles to add")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	repo, closeRepo, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open persistence backend: %v", err)
	}
	defer closeRepo()

	st, err := store.Open(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	if _, err := seed.EnsureStaff(ctx, service.NewUserService(st), cfg.Seed); err != nil {
		log.Fatalf("Failed to create staff account: %v", err)
	}

	vehicles := seed.DemoFleet()
	if *fleetPath != "" {
		if vehicles, err = seed.LoadFleet(*fleetPath); err != nil {
			log.Fatalf("Failed to load fleet: %v", err)
		}
	} else if !cfg.Seed.DemoFleet {
		vehicles = nil
	}
	added, err := seed.AddVehicles(ctx, service.NewVehicleService(st), vehicles)
	if err != nil {
		log.Fatalf("Failed to add vehicles: %v", err)
	}
	logger.Info("Seed completed", "vehiclesAdded", added)
}
