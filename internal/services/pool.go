package services

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-scorer/internal/models"
)

// Pool scores a batch of resumes with bounded concurrency.
type Pool interface {
	ScoreBatch(ctx context.Context, docs []models.ResumeDocument, profile *models.RoleProfile, weights models.Weights) []models.RankedResult
}

type pool struct {
	pipeline    Pipeline
	concurrency int
}

func NewPool(pipeline Pipeline, concurrency int) Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &pool{
		pipeline:    pipeline,
		concurrency: concurrency,
	}
}

// ScoreBatch implements Pool. Results come back ranked; the slot of each
// resume is fixed by its upload index, so completion order does not matter.
func (p *pool) ScoreBatch(
	ctx context.Context,
	docs []models.ResumeDocument,
	profile *models.RoleProfile,
	weights models.Weights,
) []models.RankedResult {
	start := time.Now()
	log.Printf("🚀 Scoring %d resumes against %s with %d workers\n", len(docs), profile.Name, p.concurrency)

	results := make([]models.RankedResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			results[i] = p.pipeline.ScoreResume(gctx, doc, profile, weights, i)
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	ranked := Rank(results)
	log.Printf("✅ Scored %d resumes in %s\n", len(ranked), time.Since(start).Round(time.Millisecond))
	return ranked
}
