package main

import (
	"context"
	"flag"
	"log"

	"study-archive-backend/internal/config"
	"study-archive-backend/internal/kvstore"
	"study-archive-backend/internal/repository"
	"study-archive-backend/internal/seed"
	"study-archive-backend/internal/service"
)

func main() {
	dataDir := flag.String("data", "scripts/data", "directory holding *groups*.yaml seed files")
	flag.Parse()

	log.Println("Loading initial groups from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	kv, err := kvstore.Open(kvstore.DefaultConfig(cfg.KVPath))
	if err != nil {
		log.Fatalf("Failed to open key-value store: %v", err)
	}
	defer kv.Close()

	groups, err := seed.LoadGroups(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load groups: %v", err)
	}

	groupService := service.NewGroupService(repository.NewGroupRepository(kv, cfg.GroupsKey), service.NewValidator())
	result, err := seed.Import(context.Background(), groupService, groups)
	if err != nil {
		log.Fatalf("Failed to import groups: %v", err)
	}

	log.Printf("Initial data loaded: %d created, %d already present", result.Created, result.Existing)
}
