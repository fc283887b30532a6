package services

import (
	"fmt"
	"strings"
	"unicode"
)

type SectionLabel string

const (
	SectionSkills         SectionLabel = "skills"
	SectionExperience     SectionLabel = "experience"
	SectionEducation      SectionLabel = "education"
	SectionProjects       SectionLabel = "projects"
	SectionSummary        SectionLabel = "summary"
	SectionCertifications SectionLabel = "certifications"
	SectionOther          SectionLabel = "other"
)

// ResumeSections maps a label to the text found under it.
type ResumeSections map[SectionLabel]string

// Has reports whether a non-empty section with that label was found.
func (s ResumeSections) Has(label SectionLabel) bool {
	return strings.TrimSpace(s[label]) != ""
}

// MaxHeadingLength is the longest line that may still be read as a heading.
const MaxHeadingLength = 40

var headingSynonyms = []struct {
	label    SectionLabel
	synonyms []string
}{
	{SectionExperience, []string{"experience", "work experience", "professional experience", "work history", "employment history", "employment"}},
	{SectionSkills, []string{"skills", "technical skills", "core skills", "skills & tools", "skills and tools", "technologies", "tech stack", "competencies"}},
	{SectionEducation, []string{"education", "academic background", "academics", "qualifications"}},
	{SectionProjects, []string{"projects", "personal projects", "selected projects", "portfolio"}},
	{SectionSummary, []string{"summary", "profile", "professional summary", "about me", "objective"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses", "achievements", "awards"}},
}

var headingIndex = func() map[string]SectionLabel {
	idx := make(map[string]SectionLabel)
	for _, group := range headingSynonyms {
		for _, s := range group.synonyms {
			idx[s] = group.label
		}
	}
	return idx
}()

type SectionSplitter interface {
	Split(text string) ResumeSections
	Name() string
}

// NewSectionSplitter picks a splitter variant. It is chosen once per deployment.
func NewSectionSplitter(kind string) (SectionSplitter, error) {
	switch kind {
	case "", "heading":
		return &headingSplitter{}, nil
	case "relaxed":
		return &relaxedSplitter{}, nil
	default:
		return nil, fmt.Errorf("unknown section splitter %q", kind)
	}
}

type headingSplitter struct{}

func (h *headingSplitter) Name() string { return "heading" }

// Split implements SectionSplitter.
func (h *headingSplitter) Split(text string) ResumeSections {
	return splitLines(text, func(line string) (SectionLabel, string, bool) {
		if len(line) >= MaxHeadingLength {
			return "", "", false
		}
		label, ok := headingIndex[normalizeHeading(line)]
		return label, "", ok
	})
}

// relaxedSplitter also accepts decorated headings ("== SKILLS ==", "• Education")
// and "Skills: Go, SQL" lines whose inline content belongs to the section.
type relaxedSplitter struct{}

func (r *relaxedSplitter) Name() string { return "relaxed" }

// Split implements SectionSplitter.
func (r *relaxedSplitter) Split(text string) ResumeSections {
	return splitLines(text, func(line string) (SectionLabel, string, bool) {
		head, rest, hasColon := strings.Cut(line, ":")
		if hasColon && len(head) < MaxHeadingLength {
			if label, ok := headingIndex[normalizeHeading(stripDecorations(head))]; ok {
				return label, strings.TrimSpace(rest), true
			}
		}
		if len(line) >= MaxHeadingLength {
			return "", "", false
		}
		label, ok := headingIndex[normalizeHeading(stripDecorations(line))]
		return label, "", ok
	})
}

type headingMatcher func(line string) (label SectionLabel, inline string, ok bool)

func splitLines(text string, match headingMatcher) ResumeSections {
	buckets := make(map[SectionLabel][]string)
	current := SectionOther

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if label, inline, ok := match(trimmed); ok {
			current = label
			if inline != "" {
				buckets[current] = append(buckets[current], inline)
			}
			continue
		}
		buckets[current] = append(buckets[current], trimmed)
	}

	sections := make(ResumeSections, len(buckets))
	for label, lines := range buckets {
		sections[label] = strings.Join(lines, "\n")
	}
	if len(sections) == 0 {
		sections[SectionOther] = ""
	}
	return sections
}

func normalizeHeading(line string) string {
	line = strings.ToLower(strings.TrimSpace(line))
	line = strings.TrimSuffix(line, ":")
	return strings.Join(strings.Fields(line), " ")
}

func stripDecorations(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
	})
}
