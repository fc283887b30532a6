package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"alfredoptarigan/resume-scorer/internal/models"
)

// SemanticWeights blends the embedding and statistical similarity signals.
type SemanticWeights struct {
	Embedding   float64
	Statistical float64
}

var DefaultSemanticWeights = SemanticWeights{Embedding: 0.7, Statistical: 0.3}

type SemanticResult struct {
	Embedding   float64
	Statistical float64
	Combined    float64
	Degraded    bool
}

const resumeChunkSize = 2000

type SemanticScorer struct {
	embedder   Embedder
	vectorizer Vectorizer
	chunker    TextChunker
	weights    SemanticWeights
	timeout    time.Duration
}

// NewSemanticScorer builds a scorer. A nil embedder is allowed and means every
// result is computed in degraded mode.
func NewSemanticScorer(embedder Embedder, weights SemanticWeights, timeout time.Duration) *SemanticScorer {
	if weights.Embedding < 0 || weights.Statistical < 0 || weights.Embedding+weights.Statistical == 0 {
		weights = DefaultSemanticWeights
	}
	sum := weights.Embedding + weights.Statistical
	weights = SemanticWeights{Embedding: weights.Embedding / sum, Statistical: weights.Statistical / sum}

	return &SemanticScorer{
		embedder:   embedder,
		vectorizer: NewTFIDFVectorizer(5000),
		chunker:    NewTextChunker(),
		weights:    weights,
		timeout:    timeout,
	}
}

func (s *SemanticScorer) HasEmbedder() bool {
	return s.embedder != nil
}

// ScoreSemantic compares resume text with the profile's comparison text. When
// the embedding signal is unavailable the returned result still holds the
// statistical-only score, flagged Degraded, alongside an
// EmbeddingUnavailableError.
func (s *SemanticScorer) ScoreSemantic(ctx context.Context, text string, profile *models.RoleProfile) (SemanticResult, error) {
	target := profile.ComparisonText()
	result := SemanticResult{Statistical: s.Statistical(text, target)}

	emb, err := s.embeddingSimilarity(ctx, text, target)
	if err != nil {
		result.Combined = result.Statistical
		result.Degraded = true
		return result, err
	}

	result.Embedding = emb
	result.Combined = clamp01(s.weights.Embedding*emb + s.weights.Statistical*result.Statistical)
	return result, nil
}

// Statistical returns the TF-IDF cosine similarity of two texts.
func (s *SemanticScorer) Statistical(text, target string) float64 {
	vectors := s.vectorizer.FitTransform([]string{target, text})
	return SparseCosine(vectors[0], vectors[1])
}

func (s *SemanticScorer) embeddingSimilarity(ctx context.Context, text, target string) (float64, error) {
	if s.embedder == nil {
		return 0, &EmbeddingUnavailableError{Cause: errors.New("no embedder configured")}
	}

	chunks := s.chunker.ChunkText(text, resumeChunkSize)
	if len(chunks) == 0 || target == "" {
		return 0, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vectors, err := s.embedder.Embed(ctx, append([]string{target}, chunks...))
	if err != nil {
		return 0, &EmbeddingUnavailableError{Cause: err}
	}
	if len(vectors) != len(chunks)+1 {
		return 0, &EmbeddingUnavailableError{Cause: fmt.Errorf("got %d vectors for %d texts", len(vectors), len(chunks)+1)}
	}

	resumeVec := MeanPool(vectors[1:])
	return clamp01(Cosine(vectors[0], resumeVec)), nil
}

// EmbedText embeds a whole resume as the mean of its chunk vectors.
func (s *SemanticScorer) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if s.embedder == nil {
		return nil, &EmbeddingUnavailableError{Cause: errors.New("no embedder configured")}
	}
	chunks := s.chunker.ChunkText(text, resumeChunkSize)
	if len(chunks) == 0 {
		return nil, errors.New("nothing to embed")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, &EmbeddingUnavailableError{Cause: err}
	}
	return MeanPool(vectors), nil
}

// Cosine returns the cosine similarity of two dense vectors, 0 on a length
// mismatch or a zero vector.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// MeanPool averages unit-normalized vectors.
func MeanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	if len(vectors) == 1 {
		return vectors[0]
	}

	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			continue
		}
		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for i, x := range v {
			sum[i] += float64(x) / norm
		}
	}

	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(vectors)))
	}
	return out
}
