package services

import (
	"fmt"
	"math"
	"sort"

	"alfredoptarigan/resume-scorer/internal/models"
)

var DefaultWeights = models.Weights{Keyword: 0.6, Semantic: 0.4}

const weightTolerance = 1e-9

// NormalizeWeights makes the keyword/semantic weights a convex pair. Negative
// values clamp to zero and an all-zero pair falls back to DefaultWeights. The
// ConfigurationError is informational; the returned weights are always usable.
func NormalizeWeights(w models.Weights) (models.Weights, *ConfigurationError) {
	keyword, semantic := w.Keyword, w.Semantic
	var cfgErr *ConfigurationError

	if math.IsNaN(keyword) || keyword < 0 || math.IsNaN(semantic) || semantic < 0 {
		cfgErr = &ConfigurationError{Field: "weights", Message: "negative weights were clamped to zero"}
		keyword = math.Max(0, nanToZero(keyword))
		semantic = math.Max(0, nanToZero(semantic))
	}

	sum := keyword + semantic
	if sum == 0 {
		return DefaultWeights, &ConfigurationError{Field: "weights", Message: "weights sum to zero, using defaults"}
	}

	if math.Abs(sum-1) > weightTolerance {
		if cfgErr == nil {
			cfgErr = &ConfigurationError{Field: "weights", Message: fmt.Sprintf("weights sum to %.3f, normalized to 1", sum)}
		}
		keyword, semantic = keyword/sum, semantic/sum
	}

	return models.Weights{Keyword: keyword, Semantic: semantic}, cfgErr
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Aggregate combines the keyword and semantic results into a breakdown.
// Weights are normalized first.
func Aggregate(kw KeywordResult, sem SemanticResult, w models.Weights) models.ScoreBreakdown {
	w, _ = NormalizeWeights(w)

	return models.ScoreBreakdown{
		KeywordCoverage:       kw.Coverage,
		SemanticSimilarity:    sem.Combined,
		EmbeddingSimilarity:   sem.Embedding,
		StatisticalSimilarity: sem.Statistical,
		CombinedScore:         clamp01(w.Keyword*kw.Coverage + w.Semantic*sem.Combined),
		MatchedKeywords:       nonNil(kw.Matched),
		MissingKeywords:       nonNil(kw.Missing),
		MissingRequired:       nonNil(kw.MissingRequired),
		MissingNiceToHave:     nonNil(kw.MissingNiceToHave),
		Degraded:              sem.Degraded,
	}
}

// Rank sorts results by combined score, highest first. The sort is stable on
// UploadIndex so equal scores keep upload order. Ranks start at 1.
func Rank(results []models.RankedResult) []models.RankedResult {
	ranked := make([]models.RankedResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Breakdown.CombinedScore != ranked[j].Breakdown.CombinedScore {
			return ranked[i].Breakdown.CombinedScore > ranked[j].Breakdown.CombinedScore
		}
		return ranked[i].UploadIndex < ranked[j].UploadIndex
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
