package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-scorer/internal/models"
)

func TestScoreKeywords_WeightedCoverage(t *testing.T) {
	result := ScoreKeywords("Python and SQL developer", dataScientist(), DefaultKeywordWeights)

	// (2*3) / (3*3 + 1*1)
	assert.InDelta(t, 0.6, result.Coverage, 1e-9)
	assert.Equal(t, []string{"Python", "SQL"}, result.Matched)
	assert.Equal(t, []string{"R"}, result.MissingRequired)
	assert.Equal(t, []string{"Docker"}, result.MissingNiceToHave)
	assert.Equal(t, []string{"R", "Docker"}, result.Missing)
}

func TestScoreKeywords_NoKeywordsIsFullCoverage(t *testing.T) {
	result := ScoreKeywords("anything at all", models.AdHocProfile("Backend engineer"), DefaultKeywordWeights)

	assert.Equal(t, 1.0, result.Coverage)
	assert.Empty(t, result.Missing)
}

func TestScoreKeywords_CaseInsensitive(t *testing.T) {
	result := ScoreKeywords("PYTHON, sql, r and docker", dataScientist(), DefaultKeywordWeights)

	assert.Equal(t, 1.0, result.Coverage)
	assert.Empty(t, result.Missing)
}

func TestScoreKeywords_DuplicatesCountOnce(t *testing.T) {
	profile := &models.RoleProfile{
		Name:               "dup",
		RequiredKeywords:   []string{"Python", "python"},
		NiceToHaveKeywords: []string{"PYTHON", "Go"},
	}

	result := ScoreKeywords("python", profile, DefaultKeywordWeights)

	// Python counted once as required (3), Go as nice (1).
	assert.InDelta(t, 0.75, result.Coverage, 1e-9)
	assert.Equal(t, []string{"Python"}, result.Matched)
	assert.Equal(t, []string{"Go"}, result.Missing)
}

func TestScoreKeywords_CustomWeights(t *testing.T) {
	result := ScoreKeywords("Docker", dataScientist(), KeywordWeights{Required: 1, Nice: 1})
	assert.InDelta(t, 0.25, result.Coverage, 1e-9)
}

func TestContainsKeyword_WordBoundaries(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    bool
	}{
		{"skilled in c++ and node.js", "c++", true},
		{"skilled in c++ and node.js", "node.js", true},
		{"skilled in c and go", "c++", false},
		{"javascript developer", "java", false},
		{"java developer", "java", true},
		{"r, python", "r", true},
		{"docker-compose", "docker", true},
		{"machine learning engineer", "machine learning", true},
		{"machine-learning engineer", "machine learning", false},
		{"python_3", "python", false},
		{"", "python", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsKeyword(tt.text, tt.keyword))
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 1.0, clamp01(1.5))
	assert.Equal(t, 0.3, clamp01(0.3))
}
