package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-scorer/internal/models"
)

func TestScoreBatch_RanksByScoreThenUploadOrder(t *testing.T) {
	pool := NewPool(newTestPipeline(t, nil), 4)
	docs := []models.ResumeDocument{
		txtDoc("weak", "Skills\nExcel"),
		txtDoc("strong", strongResume),
		txtDoc("broken", ""),
		txtDoc("strong-copy", strongResume),
	}

	ranked := pool.ScoreBatch(context.Background(), docs, dataScientist(), DefaultWeights)

	require.Len(t, ranked, 4)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ResumeID
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"strong", "strong-copy", "weak", "broken"}, ids)
	assert.Equal(t, ranked[0].Breakdown.CombinedScore, ranked[1].Breakdown.CombinedScore)
	assert.True(t, ranked[3].Breakdown.ExtractionFailed)
}

func TestScoreBatch_ConcurrencyDoesNotChangeResult(t *testing.T) {
	var docs []models.ResumeDocument
	for i := 0; i < 12; i++ {
		docs = append(docs, txtDoc(fmt.Sprintf("r%02d", i), fmt.Sprintf("Skills\nPython %s", []string{"SQL", "R", "Docker"}[i%3])))
	}

	serial := NewPool(newTestPipeline(t, &fakeEmbedder{}), 1).ScoreBatch(context.Background(), docs, dataScientist(), DefaultWeights)
	parallel := NewPool(newTestPipeline(t, &fakeEmbedder{}), 8).ScoreBatch(context.Background(), docs, dataScientist(), DefaultWeights)

	assert.Equal(t, serial, parallel)
}

func TestScoreBatch_Empty(t *testing.T) {
	ranked := NewPool(newTestPipeline(t, nil), 0).ScoreBatch(context.Background(), nil, dataScientist(), DefaultWeights)
	assert.Empty(t, ranked)
}

func TestScoreBatch_IdenticalResumesKeepUploadOrder(t *testing.T) {
	pool := NewPool(newTestPipeline(t, nil), 2)
	text := largeResume()
	docs := []models.ResumeDocument{txtDoc("first", text), txtDoc("second", text)}

	for i := 0; i < 200; i++ {
		ranked := pool.ScoreBatch(context.Background(), docs, dataScientist(), DefaultWeights)

		require.Len(t, ranked, 2)
		require.Equal(t, ranked[0].Breakdown.CombinedScore, ranked[1].Breakdown.CombinedScore, "batch %d", i)
		require.Equal(t, "first", ranked[0].ResumeID, "batch %d", i)
	}
}
