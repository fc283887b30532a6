package services

import (
	"bytes"
	"encoding/csv"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-scorer/internal/models"
)

func sampleRanking() []models.RankedResult {
	return []models.RankedResult{
		{
			Rank: 1, ResumeID: "id-1", Filename: "alice.pdf",
			Breakdown: models.ScoreBreakdown{KeywordCoverage: 0.6, SemanticSimilarity: 0.5, CombinedScore: 0.56, MissingKeywords: []string{"R", "Docker"}},
		},
		{
			Rank: 2, ResumeID: "id-2",
			Breakdown: models.ScoreBreakdown{MissingKeywords: []string{}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRanking()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"resume_id", "coverage", "semantic_similarity", "combined_score", "missing_keywords"},
		{"alice.pdf", "0.6000", "0.5000", "0.5600", "R;Docker"},
		{"id-2", "0.0000", "0.0000", "0.0000", ""},
	}, rows)
}

func TestExportStore_SaveAndDelete(t *testing.T) {
	store := NewExportStore(t.TempDir() + "/exports")
	require.NoError(t, store.EnsureExportDir())

	filename, path, err := store.SaveExport("session-1", sampleRanking())
	require.NoError(t, err)
	assert.Contains(t, filename, "session-1_")
	assert.Equal(t, store.GetFilePath(filename), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice.pdf")

	require.NoError(t, store.DeleteFile(filename))
	assert.Error(t, store.DeleteFile(filename))
}

func TestRolePointID_Stable(t *testing.T) {
	assert.Equal(t, RolePointID("data_scientist"), RolePointID("data_scientist"))
	assert.NotEqual(t, RolePointID("data_scientist"), RolePointID("data_analyst"))
}

func TestQdrantRoleIndex_EnsureCollectionConcurrent(t *testing.T) {
	q := &qdrantRoleIndex{collectionName: "roles", ready: true}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, q.ensureCollection(context.Background(), 32))
		}()
	}
	wg.Wait()
}
