package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fleetdesk-io/fleetdesk/internal/config"
	"github.com/fleetdesk-io/fleetdesk/internal/database"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

// Connectivity smoke check: loads the config, opens the database, runs
// migrations and issues a couple of queries. Useful when wiring up a new
// deployment before starting the API.
func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Testing database initialization...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config loaded - database type: %s", cfg.Database.Type)

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialization successful!")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := store.New(db)
	companies, err := s.CountActiveCompanies(ctx)
	if err != nil {
		log.Fatalf("Failed to query companies: %v", err)
	}
	drivers, err := s.CountActiveDrivers(ctx)
	if err != nil {
		log.Fatalf("Failed to query drivers: %v", err)
	}

	log.Printf("Database connection test successful! %d active companies, %d active drivers", companies, drivers)
}
