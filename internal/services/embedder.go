package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Embedder returns one fixed-length vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

const (
	maxEmbedInputRunes = 8000
	maxEmbedBatch      = 100
)

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	limiter    *rate.Limiter
}

// NewGeminiEmbedder creates the Gemini-backed embedder. Without an API key it
// returns an EmbeddingUnavailableError so callers can run in degraded mode.
func NewGeminiEmbedder(apiKey, model string, requestsPerSecond float64) (Embedder, error) {
	if apiKey == "" {
		return nil, &EmbeddingUnavailableError{Cause: errors.New("GEMINI_API_KEY is not set")}
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &EmbeddingUnavailableError{Cause: fmt.Errorf("failed to create gemini client: %w", err)}
	}

	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: model,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxEmbedBatch {
		end := min(start+maxEmbedBatch, len(texts))

		var contents []*genai.Content
		for _, text := range texts[start:end] {
			contents = append(contents, genai.Text(truncateRunes(text, maxEmbedInputRunes))...)
		}

		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to wait for embedding rate limit: %w", err)
		}

		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
			TaskType: "SEMANTIC_SIMILARITY",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if result == nil || len(result.Embeddings) != end-start {
			return nil, fmt.Errorf("unexpected embedding result size for %d inputs", end-start)
		}

		for _, e := range result.Embeddings {
			out = append(out, e.Values)
		}
	}

	return out, nil
}

// cachingEmbedder memoizes vectors by text hash. One instance is shared by the
// whole process; Invalidate is called when role profiles are reloaded.
type cachingEmbedder struct {
	inner Embedder
	mu    sync.RWMutex
	cache map[[sha256.Size]byte][]float32
}

type CachingEmbedder interface {
	Embedder
	Invalidate()
	Len() int
}

func NewCachingEmbedder(inner Embedder) CachingEmbedder {
	return &cachingEmbedder{
		inner: inner,
		cache: make(map[[sha256.Size]byte][]float32),
	}
}

// Embed implements Embedder. Only texts missing from the cache reach the
// underlying embedder, in a single call.
func (c *cachingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	keys := make([][sha256.Size]byte, len(texts))
	var missIdx []int
	var missTexts []string

	c.mu.RLock()
	for i, t := range texts {
		keys[i] = sha256.Sum256([]byte(t))
		if v, ok := c.cache[keys[i]]; ok {
			out[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}
	c.mu.RUnlock()

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := c.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missTexts))
	}

	c.mu.Lock()
	for j, i := range missIdx {
		c.cache[keys[i]] = vectors[j]
		out[i] = vectors[j]
	}
	c.mu.Unlock()

	return out, nil
}

func (c *cachingEmbedder) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[[sha256.Size]byte][]float32)
	c.mu.Unlock()
}

func (c *cachingEmbedder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
