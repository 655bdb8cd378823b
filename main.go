package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"noir-api-mapper/internal/config"
	"noir-api-mapper/internal/logger"
	"noir-api-mapper/internal/pipeline"
	"noir-api-mapper/internal/synthesis"

	"github.com/joho/godotenv"
)

func main() {
	repoRef := flag.String("repo", "", "Repository path or git URL")
	baseURL := flag.String("base-url", "", "Base URL of the API")
	out := flag.String("out", "", "Output Postman collection file (default <output dir>/postman_collection.json)")
	openapiOut := flag.String("openapi", "", "Optional OpenAPI 3 output file (.json, .yaml or .yml)")
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	if *repoRef == "" || *baseURL == "" {
		fmt.Println("Error: -repo and -base-url are required")
		flag.Usage()
		os.Exit(1)
	}

	// Pick up the synthesis API key from a .env file if one is present.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	postmanPath := *out
	if postmanPath == "" {
		postmanPath = filepath.Join(cfg.Output.Dir, "postman_collection.json")
	}

	synthLogger, err := logger.NewLogger("logs")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer synthLogger.Close()

	client, err := synthesis.NewClient(cfg.Synthesis)
	if err != nil {
		log.Fatalf("Failed to create synthesis client: %v", err)
	}

	p := pipeline.New(cfg, client, synthLogger)
	if err := p.Run(context.Background(), *repoRef, *baseURL, postmanPath, *openapiOut); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Printf("Postman collection saved to %s\n", postmanPath)
	if *openapiOut != "" {
		fmt.Printf("OpenAPI document saved to %s\n", *openapiOut)
	}
}
