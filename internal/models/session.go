package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoringSession is the ranked output of one upload batch, kept so the UI can
// come back to it for details and CSV export.
type ScoringSession struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Role           string         `gorm:"type:text" json:"role"`
	KeywordWeight  float64        `json:"keyword_weight"`
	SemanticWeight float64        `json:"semantic_weight"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Results        []ResultRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"results"`
}

func (ScoringSession) TableName() string {
	return "scoring_sessions"
}

type ResultRecord struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key"`
	SessionID             uuid.UUID `gorm:"type:uuid;not null;index"`
	Rank                  int
	ResumeID              string   `gorm:"type:text"`
	Filename              string   `gorm:"type:text"`
	UploadIndex           int
	KeywordCoverage       float64
	SemanticSimilarity    float64
	EmbeddingSimilarity   float64
	StatisticalSimilarity float64
	CombinedScore         float64
	MatchedKeywords       []string `gorm:"serializer:json"`
	MissingRequired       []string `gorm:"serializer:json"`
	MissingNiceToHave     []string `gorm:"serializer:json"`
	Suggestions           []string `gorm:"serializer:json"`
	Degraded              bool
	ExtractionFailed      bool
	ErrorMessage          string `gorm:"type:text"`
}

func (ResultRecord) TableName() string {
	return "scoring_results"
}

func (s *ScoringSession) Weights() Weights {
	return Weights{Keyword: s.KeywordWeight, Semantic: s.SemanticWeight}
}

// NewScoringSession builds a session from already ranked results.
func NewScoringSession(role string, w Weights, results []RankedResult) *ScoringSession {
	session := &ScoringSession{
		ID:             uuid.New(),
		Role:           role,
		KeywordWeight:  w.Keyword,
		SemanticWeight: w.Semantic,
		CreatedAt:      time.Now(),
	}
	for _, r := range results {
		session.Results = append(session.Results, ResultRecord{
			ID:                    uuid.New(),
			SessionID:             session.ID,
			Rank:                  r.Rank,
			ResumeID:              r.ResumeID,
			Filename:              r.Filename,
			UploadIndex:           r.UploadIndex,
			KeywordCoverage:       r.Breakdown.KeywordCoverage,
			SemanticSimilarity:    r.Breakdown.SemanticSimilarity,
			EmbeddingSimilarity:   r.Breakdown.EmbeddingSimilarity,
			StatisticalSimilarity: r.Breakdown.StatisticalSimilarity,
			CombinedScore:         r.Breakdown.CombinedScore,
			MatchedKeywords:       r.Breakdown.MatchedKeywords,
			MissingRequired:       r.Breakdown.MissingRequired,
			MissingNiceToHave:     r.Breakdown.MissingNiceToHave,
			Suggestions:           r.Suggestions,
			Degraded:              r.Breakdown.Degraded,
			ExtractionFailed:      r.Breakdown.ExtractionFailed,
			ErrorMessage:          r.Breakdown.Error,
		})
	}
	return session
}

// Ranked converts the stored records back to ranked results, in rank order.
func (s *ScoringSession) Ranked() []RankedResult {
	out := make([]RankedResult, len(s.Results))
	for i, rec := range s.Results {
		missing := append(append([]string{}, rec.MissingRequired...), rec.MissingNiceToHave...)
		out[i] = RankedResult{
			Rank:        rec.Rank,
			ResumeID:    rec.ResumeID,
			Filename:    rec.Filename,
			UploadIndex: rec.UploadIndex,
			Suggestions: rec.Suggestions,
			Breakdown: ScoreBreakdown{
				KeywordCoverage:       rec.KeywordCoverage,
				SemanticSimilarity:    rec.SemanticSimilarity,
				EmbeddingSimilarity:   rec.EmbeddingSimilarity,
				StatisticalSimilarity: rec.StatisticalSimilarity,
				CombinedScore:         rec.CombinedScore,
				MatchedKeywords:       rec.MatchedKeywords,
				MissingKeywords:       missing,
				MissingRequired:       rec.MissingRequired,
				MissingNiceToHave:     rec.MissingNiceToHave,
				Degraded:              rec.Degraded,
				ExtractionFailed:      rec.ExtractionFailed,
				Error:                 rec.ErrorMessage,
			},
		}
	}
	return out
}

func (s *ScoringSession) ToResponse() SessionResponse {
	return SessionResponse{
		ID:        s.ID.String(),
		Role:      s.Role,
		Weights:   s.Weights(),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		Results:   s.Ranked(),
	}
}
