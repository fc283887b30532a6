package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = "Data scientist with Python and SQL.\nBuilt machine learning models for churn."

func TestScoreSemantic_NoEmbedderIsDegraded(t *testing.T) {
	scorer := NewSemanticScorer(nil, DefaultSemanticWeights, time.Second)

	result, err := scorer.ScoreSemantic(context.Background(), resumeText, dataScientist())

	var unavailable *EmbeddingUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.True(t, result.Degraded)
	assert.Greater(t, result.Statistical, 0.0)
	assert.Equal(t, result.Statistical, result.Combined)
	assert.False(t, scorer.HasEmbedder())
}

func TestScoreSemantic_EmbedderFailureIsDegraded(t *testing.T) {
	scorer := NewSemanticScorer(&fakeEmbedder{err: errors.New("quota exceeded")}, DefaultSemanticWeights, time.Second)

	result, err := scorer.ScoreSemantic(context.Background(), resumeText, dataScientist())

	var unavailable *EmbeddingUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.True(t, result.Degraded)
	assert.Equal(t, result.Statistical, result.Combined)
}

func TestScoreSemantic_TimeoutIsDegraded(t *testing.T) {
	scorer := NewSemanticScorer(&fakeEmbedder{delay: time.Second}, DefaultSemanticWeights, 20*time.Millisecond)

	result, err := scorer.ScoreSemantic(context.Background(), resumeText, dataScientist())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, result.Degraded)
}

func TestScoreSemantic_BlendsSignals(t *testing.T) {
	scorer := NewSemanticScorer(&fakeEmbedder{}, DefaultSemanticWeights, time.Second)

	result, err := scorer.ScoreSemantic(context.Background(), resumeText, dataScientist())

	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Greater(t, result.Embedding, 0.0)
	assert.InDelta(t, 0.7*result.Embedding+0.3*result.Statistical, result.Combined, 1e-9)
	assert.GreaterOrEqual(t, result.Combined, 0.0)
	assert.LessOrEqual(t, result.Combined, 1.0)
}

func TestScoreSemantic_NegativeCosineClampsToZero(t *testing.T) {
	profile := dataScientist()
	embedder := &fakeEmbedder{vec: func(text string) []float32 {
		if text == profile.Description {
			return []float32{1, 0}
		}
		return []float32{-1, 0}
	}}
	scorer := NewSemanticScorer(embedder, DefaultSemanticWeights, time.Second)

	result, err := scorer.ScoreSemantic(context.Background(), resumeText, profile)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Embedding)
	assert.InDelta(t, 0.3*result.Statistical, result.Combined, 1e-9)
}

func TestNewSemanticScorer_InvalidWeightsFallBack(t *testing.T) {
	scorer := NewSemanticScorer(nil, SemanticWeights{}, 0)
	assert.InDelta(t, 0.7, scorer.weights.Embedding, 1e-12)
	assert.InDelta(t, 0.3, scorer.weights.Statistical, 1e-12)

	scorer = NewSemanticScorer(nil, SemanticWeights{Embedding: 2, Statistical: 2}, 0)
	assert.InDelta(t, 0.5, scorer.weights.Embedding, 1e-12)
}

func TestEmbedText(t *testing.T) {
	scorer := NewSemanticScorer(&fakeEmbedder{}, DefaultSemanticWeights, time.Second)

	vec, err := scorer.EmbedText(context.Background(), resumeText)
	require.NoError(t, err)
	assert.Len(t, vec, 32)

	_, err = NewSemanticScorer(nil, DefaultSemanticWeights, 0).EmbedText(context.Background(), resumeText)
	var unavailable *EmbeddingUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 2}))
}

func TestMeanPool(t *testing.T) {
	pooled := MeanPool([][]float32{{2, 0}, {0, 3}})
	assert.InDeltaSlice(t, []float32{0.5, 0.5}, pooled, 1e-6)

	assert.Nil(t, MeanPool(nil))
	assert.Equal(t, []float32{1, 2}, MeanPool([][]float32{{1, 2}}))
}
