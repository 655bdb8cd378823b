package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"noir-api-mapper/internal/config"
	"noir-api-mapper/internal/export"
	"noir-api-mapper/internal/logger"
	"noir-api-mapper/internal/noir"
	"noir-api-mapper/internal/repo"
	"noir-api-mapper/internal/scanner"
	"noir-api-mapper/internal/synthesis"
	"noir-api-mapper/internal/types"
)

// Pipeline sequences repository acquisition, static analysis, route
// scanning, batching, synthesis and merging. The collaborator fields exist
// so tests can substitute stubs; New wires the real implementations.
type Pipeline struct {
	Config *config.Config
	Synth  synthesis.Synthesizer
	Logger *logger.Logger

	Acquire func(ctx context.Context, repoRef string) (string, func(), error)
	Analyze func(ctx context.Context, repoPath, baseURL string) ([]types.NoirEndpoint, noir.Diagnostics, error)
	Scan    func(root string) ([]types.RouteFile, error)
}

// New creates a pipeline wired to the real collaborators.
func New(cfg *config.Config, synth synthesis.Synthesizer, synthLogger *logger.Logger) *Pipeline {
	runner := noir.NewRunner()
	routeScanner := scanner.New(scanner.Config{
		MaxFiles:        cfg.Scan.MaxFiles,
		MaxContentChars: cfg.Scan.MaxContentChars,
		MaxFileSize:     cfg.Scan.MaxFileSize,
	})
	return &Pipeline{
		Config:  cfg,
		Synth:   synth,
		Logger:  synthLogger,
		Acquire: repo.Acquire,
		Analyze: runner.Analyze,
		Scan:    routeScanner.ScanRouteFiles,
	}
}

// GenerateCollection runs the synthesis pipeline and returns the merged
// collection. Batches are synthesized sequentially in input order; any
// failure aborts the run, since a collection merged from a subset of
// batches would silently under-report endpoints.
func (p *Pipeline) GenerateCollection(ctx context.Context, repoRef, baseURL string) (*types.ApiCollection, error) {
	repoPath, cleanup, err := p.Acquire(ctx, repoRef)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire repository: %w", err)
	}
	defer cleanup()

	endpoints, diag, err := p.Analyze(ctx, repoPath, baseURL)
	if err != nil {
		return nil, err
	}
	p.reportDiagnostics(diag)

	files, err := p.Scan(repoPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Identified %d candidate routing files", len(files))

	batches := synthesis.BuildBatches(baseURL, endpoints, files, p.Config.Synthesis.MaxRequestChars)

	collections := make([]types.ApiCollection, 0, len(batches))
	for i, batch := range batches {
		log.Printf("Synthesizing batch %d/%d", i+1, len(batches))
		collection, err := p.Synth.Synthesize(ctx, batch)
		if p.Logger != nil {
			p.Logger.LogSynthesis(i, batch, collection, err)
		}
		if err != nil {
			var synthErr *synthesis.Error
			if errors.As(err, &synthErr) && synthErr.Batch < 0 {
				synthErr.Batch = i
			}
			return nil, err
		}
		collections = append(collections, *collection)
	}

	merged, err := synthesis.Merge(collections)
	if err != nil {
		return nil, err
	}
	if merged.BaseURL != baseURL {
		return nil, &synthesis.Error{
			Reason: synthesis.ReasonBaseURLMismatch,
			Batch:  -1,
			Detail: fmt.Sprintf("merged baseUrl %q does not match requested %q", merged.BaseURL, baseURL),
		}
	}
	return merged, nil
}

// Run executes the full pipeline and writes the export artifacts: the
// Postman collection to postmanPath, plus an OpenAPI document when
// openapiPath is non-empty.
func (p *Pipeline) Run(ctx context.Context, repoRef, baseURL, postmanPath, openapiPath string) error {
	log.Printf("Starting pipeline for repo=%s base_url=%s", repoRef, baseURL)

	collection, err := p.GenerateCollection(ctx, repoRef, baseURL)
	if err != nil {
		return err
	}

	postman := export.BuildPostmanCollection(collection)
	if err := export.SavePostmanCollection(postman, postmanPath); err != nil {
		return err
	}
	log.Printf("Postman collection saved to %s", postmanPath)

	if openapiPath != "" {
		doc, err := export.BuildOpenAPIDocument(collection)
		if err != nil {
			return err
		}
		if err := export.SaveOpenAPIDocument(doc, openapiPath); err != nil {
			return err
		}
		log.Printf("OpenAPI document saved to %s", openapiPath)
	}

	log.Printf("Pipeline finished successfully")
	return nil
}

func (p *Pipeline) reportDiagnostics(diag noir.Diagnostics) {
	log.Printf("Parsed %d endpoints from noir", diag.Matched)
	for _, skipped := range diag.Skipped {
		log.Printf("Skipping malformed noir endpoint %v: %s", skipped.Node, skipped.Reason)
	}
	if diag.Matched == 0 {
		log.Printf("Noir output contained no endpoints; top-level keys: %v", diag.TopLevelKeys)
	}
}
