package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTFIDF_IdenticalDocuments(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{"python sql machine learning", "python sql machine learning"})

	assert.InDelta(t, 1.0, SparseCosine(vecs[0], vecs[1]), 1e-9)
}

func TestTFIDF_DisjointDocuments(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{"python sql", "watercolor painting"})

	assert.Equal(t, 0.0, SparseCosine(vecs[0], vecs[1]))
}

func TestTFIDF_StopWordsOnly(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{"the and of", "python"})

	assert.Empty(t, vecs[0])
	assert.Equal(t, 0.0, SparseCosine(vecs[0], vecs[1]))
}

func TestTFIDF_PartialOverlapIsBetween(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{"python sql statistics", "python excel marketing"})

	sim := SparseCosine(vecs[0], vecs[1])
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 1.0)
	assert.InDelta(t, sim, SparseCosine(vecs[1], vecs[0]), 1e-12)
}

func TestTFIDF_MaxFeatures(t *testing.T) {
	v := NewTFIDFVectorizer(2)
	vecs := v.FitTransform([]string{"alpha alpha alpha beta beta gamma", "alpha beta gamma delta"})

	indexes := map[int]bool{}
	for _, vec := range vecs {
		for idx := range vec {
			indexes[idx] = true
		}
	}
	assert.Len(t, indexes, 2)
}

func TestTFIDF_VectorsAreUnitLength(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{"go kubernetes docker docker", "go"})

	var norm float64
	for _, w := range vecs[0] {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

// largeResume has a vocabulary big enough that summation order shows up in the
// last bits of a float.
func largeResume() string {
	words := []string{"python", "sql", "docker", "kubernetes", "pandas", "statistics", "airflow",
		"spark", "tableau", "forecasting", "regression", "clustering", "etl", "dashboards"}
	var b strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "Delivered %s and %s work on pipeline%d with metric%d for team%d\n",
			words[i%len(words)], words[(i*7)%len(words)], i, i%17, i%5)
	}
	return b.String()
}

func TestStatistical_BitIdenticalAcrossRuns(t *testing.T) {
	s := NewSemanticScorer(nil, DefaultSemanticWeights, time.Second)
	text := largeResume()
	target := dataScientist().ComparisonText() + " python sql docker spark forecasting pipeline7 metric3"

	want := s.Statistical(text, target)
	assert.Greater(t, want, 0.0)
	for i := 0; i < 300; i++ {
		if got := s.Statistical(text, target); got != want {
			t.Fatalf("run %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSparseCosine_OrderIndependentOfSwap(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	vecs := v.FitTransform([]string{largeResume(), "python sql docker spark pipeline3"})

	assert.Equal(t, SparseCosine(vecs[0], vecs[1]), SparseCosine(vecs[1], vecs[0]))
}
