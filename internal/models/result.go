package models

// ScoreBreakdown is the score of one resume against one role profile.
// CombinedScore is a convex combination of KeywordCoverage and SemanticSimilarity.
type ScoreBreakdown struct {
	KeywordCoverage       float64  `json:"keyword_coverage"`
	SemanticSimilarity    float64  `json:"semantic_similarity"`
	EmbeddingSimilarity   float64  `json:"embedding_similarity"`
	StatisticalSimilarity float64  `json:"statistical_similarity"`
	CombinedScore         float64  `json:"combined_score"`
	MatchedKeywords       []string `json:"matched_keywords"`
	MissingKeywords       []string `json:"missing_keywords"`
	MissingRequired       []string `json:"missing_required"`
	MissingNiceToHave     []string `json:"missing_nice_to_have"`
	Degraded              bool     `json:"degraded"`
	ExtractionFailed      bool     `json:"extraction_failed"`
	Error                 string   `json:"error,omitempty"`
}

// RankedResult is one row of a ranking. UploadIndex is the tie-breaker.
type RankedResult struct {
	Rank        int            `json:"rank"`
	ResumeID    string         `json:"resume_id"`
	Filename    string         `json:"filename"`
	UploadIndex int            `json:"upload_index"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Suggestions []string       `json:"suggestions"`
}

// RoleFit is one row of a multi-role comparison for a single resume.
type RoleFit struct {
	Role        string         `json:"role"`
	DisplayName string         `json:"display_name"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

// RoleMatch is a nearest-role hit from the role index.
type RoleMatch struct {
	Role  string  `json:"role"`
	Score float32 `json:"score"`
}

type Weights struct {
	Keyword  float64 `json:"keyword_weight"`
	Semantic float64 `json:"semantic_weight"`
}

// ScoreRequest holds the non-file fields of a scoring form. Either a known
// role or a pasted job description is required. Weights are normalized later,
// so out-of-range values are reported rather than rejected.
type ScoreRequest struct {
	Role           string  `json:"role" form:"role" validate:"required_without=JobDescription"`
	JobDescription string  `json:"job_description" form:"job_description"`
	KeywordWeight  float64 `json:"keyword_weight" form:"keyword_weight"`
	SemanticWeight float64 `json:"semantic_weight" form:"semantic_weight"`
}

type SessionResponse struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Weights   Weights        `json:"weights"`
	CreatedAt string         `json:"created_at"`
	Results   []RankedResult `json:"results"`
	Warnings  []string       `json:"warnings,omitempty"`
}

type CompareResponse struct {
	Filename string    `json:"filename"`
	Weights  Weights   `json:"weights"`
	Fits     []RoleFit `json:"fits"`
}

type FeedbackResponse struct {
	Role        string   `json:"role,omitempty"`
	Known       bool     `json:"known"`
	Suggestions []string `json:"suggestions"`
}

type RolesResponse struct {
	Roles  []string `json:"roles"`
	Errors []string `json:"errors,omitempty"`
}
