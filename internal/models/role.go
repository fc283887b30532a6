package models

import "strings"

// RoleProfile describes a target role. Profiles are immutable once loaded and
// shared read-only between requests.
type RoleProfile struct {
	Name               string   `json:"name" validate:"required"`
	RequiredKeywords   []string `json:"required_keywords" validate:"dive,required"`
	NiceToHaveKeywords []string `json:"nice_to_have_keywords" validate:"dive,required"`
	Description        string   `json:"description"`
	Source             string   `json:"source,omitempty" validate:"-"`
}

// KeywordCount returns the number of declared keywords.
func (p *RoleProfile) KeywordCount() int {
	return len(p.RequiredKeywords) + len(p.NiceToHaveKeywords)
}

// ComparisonText is the text the semantic scorer compares resumes against.
func (p *RoleProfile) ComparisonText() string {
	if desc := strings.TrimSpace(p.Description); desc != "" {
		return desc
	}
	all := append(append([]string{}, p.RequiredKeywords...), p.NiceToHaveKeywords...)
	return strings.Join(all, " ")
}

// DisplayName turns "data_scientist" into "Data Scientist".
func (p *RoleProfile) DisplayName() string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(p.Name))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// AdHocProfile wraps a pasted job description. It has no keywords, so keyword
// coverage is vacuously full and ranking is driven by semantic similarity.
func AdHocProfile(jobDescription string) *RoleProfile {
	return &RoleProfile{
		Name:        "custom_job_description",
		Description: strings.TrimSpace(jobDescription),
		Source:      "pasted",
	}
}
