package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingEmbedder_OnlyMissesReachInner(t *testing.T) {
	inner := &fakeEmbedder{}
	cache := NewCachingEmbedder(inner)
	ctx := context.Background()

	first, err := cache.Embed(ctx, []string{"role description", "resume one"})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	second, err := cache.Embed(ctx, []string{"role description", "resume two"})
	require.NoError(t, err)

	calls, texts := inner.stats()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, texts)
	assert.Equal(t, first[0], second[0])

	_, err = cache.Embed(ctx, []string{"resume one", "resume two"})
	require.NoError(t, err)
	calls, _ = inner.stats()
	assert.Equal(t, 2, calls)
}

func TestCachingEmbedder_Invalidate(t *testing.T) {
	inner := &fakeEmbedder{}
	cache := NewCachingEmbedder(inner)

	_, err := cache.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)
	cache.Invalidate()
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)
	calls, _ := inner.stats()
	assert.Equal(t, 2, calls)
}

func TestCachingEmbedder_ErrorsAreNotCached(t *testing.T) {
	inner := &fakeEmbedder{err: errors.New("boom")}
	cache := NewCachingEmbedder(inner)

	_, err := cache.Embed(context.Background(), []string{"a"})
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestNewGeminiEmbedder_NoKey(t *testing.T) {
	_, err := NewGeminiEmbedder("", "text-embedding-004", 5)

	var unavailable *EmbeddingUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}
