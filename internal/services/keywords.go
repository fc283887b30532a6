package services

import (
	"math"
	"regexp"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

// KeywordWeights sets how much a required keyword counts relative to a
// nice-to-have one.
type KeywordWeights struct {
	Required float64
	Nice     float64
}

var DefaultKeywordWeights = KeywordWeights{Required: 3, Nice: 1}

type KeywordResult struct {
	Coverage          float64
	Matched           []string
	Missing           []string
	MissingRequired   []string
	MissingNiceToHave []string
}

// ScoreKeywords matches every profile keyword against the full resume text,
// case-insensitively and on word boundaries.
func ScoreKeywords(text string, profile *models.RoleProfile, weights KeywordWeights) KeywordResult {
	if weights.Required <= 0 && weights.Nice <= 0 {
		weights = DefaultKeywordWeights
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var result KeywordResult
	var got, total float64

	tally := func(keywords []string, weight float64, missing *[]string) {
		for _, kw := range keywords {
			key := strings.ToLower(strings.TrimSpace(kw))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			total += weight

			if ContainsKeyword(lower, key) {
				got += weight
				result.Matched = append(result.Matched, kw)
			} else {
				*missing = append(*missing, kw)
			}
		}
	}

	tally(profile.RequiredKeywords, weights.Required, &result.MissingRequired)
	tally(profile.NiceToHaveKeywords, weights.Nice, &result.MissingNiceToHave)

	result.Missing = append(append([]string{}, result.MissingRequired...), result.MissingNiceToHave...)

	if total == 0 {
		result.Coverage = 1.0
		return result
	}
	result.Coverage = clamp01(got / total)
	return result
}

// ContainsKeyword reports whether keyword occurs in text as a whole term. Both
// arguments must already be lower-cased. A boundary is anything that is not a
// letter, digit or underscore, so "c++" and "node.js" match as written.
func ContainsKeyword(text, keyword string) bool {
	return keywordPattern(keyword).MatchString(text)
}

func keywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\pL\pN_])` + regexp.QuoteMeta(keyword) + `(?:$|[^\pL\pN_])`)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
