package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/projectsearch/internal/config"
	"github.com/agenthands/projectsearch/internal/core"
	"github.com/agenthands/projectsearch/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	ctx := context.Background()

	graph, err := core.OpenGraph(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}
	if graph != nil {
		defer graph.Close(ctx)
	}

	finder, err := core.NewFinderFromConfig(ctx, cfg, graph)
	if err != nil {
		log.Fatalf("Failed to initialize search: %v", err)
	}
	defer finder.Close()

	// The server stays up on load failures; POST /api/feed/reload retries.
	if _, err := finder.Load(ctx); err != nil {
		log.Printf("Warning: initial feed load failed: %v", err)
	}
	if cfg.Resolver.Source != "" {
		if err := finder.InitResolver(ctx); err != nil {
			log.Printf("Warning: resolver init failed, links fall back to feed URLs: %v", err)
		}
	}

	r := server.NewServer(finder, cfg.Search.Fuzzy).SetupRouter()

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
