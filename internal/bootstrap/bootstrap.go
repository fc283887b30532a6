// Package bootstrap builds the scoring components shared by the API server
// and the CLI from a loaded config.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resume-scorer/internal/config"
	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

type Components struct {
	Profiles  services.ProfileStore
	Extractor services.TextExtractor
	Embedder  services.CachingEmbedder // nil when no API key is configured
	Semantic  *services.SemanticScorer
	Pipeline  services.Pipeline
	Pool      services.Pool
	RoleIndex services.RoleIndex // nil unless QDRANT_URL is set
	Weights   models.Weights
}

// Build loads the role profiles and wires the scoring pipeline. A missing
// embedding backend or role index is logged and tolerated; a bad profile
// directory or splitter name is not.
func Build(cfg *config.Config) (*Components, error) {
	c := &Components{}

	c.Profiles = services.NewProfileStore(cfg.Profiles.Dir)
	if _, err := c.Profiles.Load(); err != nil {
		return nil, fmt.Errorf("failed to load role profiles: %w", err)
	}

	splitter, err := services.NewSectionSplitter(cfg.Scoring.SectionSplitter)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Section splitter: %s\n", splitter.Name())

	embedder, err := services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, cfg.Gemini.RequestsPerSecond)
	if err != nil {
		log.Printf("⚠️  Embeddings disabled, semantic scores are statistical only: %v\n", err)
	} else {
		c.Embedder = services.NewCachingEmbedder(embedder)
		log.Printf("✅ Gemini embeddings enabled (%s)\n", cfg.Gemini.EmbedModel)
	}

	// Keep the interface nil when there is no embedder.
	var semanticEmbedder services.Embedder
	if c.Embedder != nil {
		semanticEmbedder = c.Embedder
	}
	c.Semantic = services.NewSemanticScorer(
		semanticEmbedder,
		services.SemanticWeights{
			Embedding:   cfg.Scoring.EmbeddingWeight,
			Statistical: cfg.Scoring.StatisticalWeight,
		},
		cfg.Scoring.EmbeddingTimeout,
	)

	c.Extractor = services.NewTextExtractor()
	c.Pipeline = services.NewPipeline(c.Extractor, splitter, c.Semantic, services.PipelineOptions{
		KeywordWeights: services.KeywordWeights{
			Required: cfg.Scoring.RequiredWeight,
			Nice:     cfg.Scoring.NiceWeight,
		},
		MaxSuggestions: cfg.Scoring.MaxSuggestions,
	})
	c.Pool = services.NewPool(c.Pipeline, cfg.Worker.Concurrency)

	weights, cfgErr := services.NormalizeWeights(models.Weights{
		Keyword:  cfg.Scoring.KeywordWeight,
		Semantic: cfg.Scoring.SemanticWeight,
	})
	if cfgErr != nil {
		log.Printf("⚠️  %v\n", cfgErr)
	}
	c.Weights = weights

	if cfg.Qdrant.URL != "" && c.Embedder != nil {
		index, err := services.NewQdrantRoleIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, c.Embedder)
		if err != nil {
			log.Printf("⚠️  Role index disabled: %v\n", err)
		} else {
			c.RoleIndex = index
			log.Println("✅ Qdrant role index initialized")
		}
	}

	return c, nil
}

// WatchProfiles keeps derived state in step with the profile directory: the
// embedding cache is cleared and the role index re-populated after every
// reload. With watch set it also starts the directory watcher.
func (c *Components) WatchProfiles(ctx context.Context, watch bool) {
	c.Profiles.OnReload(func(profiles []*models.RoleProfile) {
		if c.Embedder != nil {
			c.Embedder.Invalidate()
		}
		if c.RoleIndex != nil {
			if err := c.RoleIndex.IndexProfiles(ctx, profiles); err != nil {
				log.Printf("⚠️  Failed to re-index roles: %v\n", err)
			}
		}
	})

	if !watch {
		return
	}
	go func() {
		if err := c.Profiles.Watch(ctx); err != nil {
			log.Printf("❌ Role profile watcher stopped: %v\n", err)
		}
	}()
}

func (c *Components) Close() {
	if c.RoleIndex != nil {
		if err := c.RoleIndex.Close(); err != nil {
			log.Printf("⚠️  Failed to close role index: %v\n", err)
		}
	}
}
