package main

import (
	"flag"
	"log"

	"github.com/fleetdesk-io/fleetdesk/internal/api"
	"github.com/fleetdesk-io/fleetdesk/internal/config"
	"github.com/fleetdesk-io/fleetdesk/internal/database"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, *database.Database, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Init(cfg)
	if err != nil {
		return nil, nil, err
	}

	a, err := api.NewApi(cfg, store.New(db))
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return a, db, nil
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting FleetDesk API v%s with config: %s", version, *configPath)

	a, db, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Fatal(a.Serve())
}
