package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

var csvHeader = []string{"resume_id", "coverage", "semantic_similarity", "combined_score", "missing_keywords"}

// WriteCSV writes a ranking in rank order. Missing keywords are joined by ";".
func WriteCSV(w io.Writer, results []models.RankedResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		id := r.ResumeID
		if r.Filename != "" {
			id = r.Filename
		}
		row := []string{
			id,
			formatScore(r.Breakdown.KeywordCoverage),
			formatScore(r.Breakdown.SemanticSimilarity),
			formatScore(r.Breakdown.CombinedScore),
			strings.Join(r.Breakdown.MissingKeywords, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
