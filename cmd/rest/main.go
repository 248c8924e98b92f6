package main

import (
	"context"
	"log"

	"line-rag-assistant/internal/bootstrap"
	"line-rag-assistant/internal/config"
	"line-rag-assistant/internal/server"
	"line-rag-assistant/internal/tracer"
	"line-rag-assistant/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Prepare the knowledge base: schema + first-run seed. Both are
	// idempotent, so restarting is always safe.
	ctx := context.Background()
	if err := container.KnowledgeService.Setup(ctx); err != nil {
		log.Panicf("Knowledge schema setup failed: %v", err)
	}
	if seeded, err := container.KnowledgeService.SeedIfEmpty(ctx); err != nil {
		log.Printf("Knowledge seeding failed: %v", err)
	} else if seeded > 0 {
		log.Printf("Seeded knowledge base with %d items", seeded)
	}

	// 5. Start Background Consumer
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
