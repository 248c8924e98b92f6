// Command seed prepares the knowledge schema and inserts the seed set when
// the store is empty. Useful for provisioning a fresh environment without
// starting the server.
package main

import (
	"context"
	"log"

	"line-rag-assistant/internal/bootstrap"
	"line-rag-assistant/internal/config"
	"line-rag-assistant/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()
	if err := container.KnowledgeService.Setup(ctx); err != nil {
		log.Fatalf("Knowledge schema setup failed: %v", err)
	}

	seeded, err := container.KnowledgeService.SeedIfEmpty(ctx)
	if err != nil {
		log.Fatalf("Knowledge seeding failed: %v", err)
	}

	if seeded == 0 {
		log.Println("Knowledge base already populated, nothing to do")
	} else {
		log.Printf("Seeded knowledge base with %d items", seeded)
	}
}
