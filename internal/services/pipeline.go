package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

type Pipeline interface {
	ScoreResume(ctx context.Context, doc models.ResumeDocument, profile *models.RoleProfile, weights models.Weights, uploadIndex int) models.RankedResult
	ScoreText(ctx context.Context, text string, profile *models.RoleProfile, weights models.Weights) (models.ScoreBreakdown, []string)
	CompareRoles(ctx context.Context, doc models.ResumeDocument, profiles []*models.RoleProfile, weights models.Weights) ([]models.RoleFit, error)
	RoleFeedback(text, roleName string, store ProfileStore) (*models.RoleProfile, []string)
	EmbedResume(ctx context.Context, doc models.ResumeDocument) ([]float32, error)
}

type PipelineOptions struct {
	KeywordWeights KeywordWeights
	MaxSuggestions int
}

type pipeline struct {
	extractor TextExtractor
	splitter  SectionSplitter
	semantic  *SemanticScorer
	opts      PipelineOptions
}

func NewPipeline(
	extractor TextExtractor,
	splitter SectionSplitter,
	semantic *SemanticScorer,
	opts PipelineOptions,
) Pipeline {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultMaxSuggestions
	}
	return &pipeline{
		extractor: extractor,
		splitter:  splitter,
		semantic:  semantic,
		opts:      opts,
	}
}

// ScoreResume runs one resume through extraction, keyword and semantic
// scoring. It never fails: an unreadable document scores zero and is flagged.
func (p *pipeline) ScoreResume(
	ctx context.Context,
	doc models.ResumeDocument,
	profile *models.RoleProfile,
	weights models.Weights,
	uploadIndex int,
) models.RankedResult {
	result := models.RankedResult{
		ResumeID:    doc.ID,
		Filename:    doc.Filename,
		UploadIndex: uploadIndex,
	}

	extracted, err := p.extractor.Extract(doc)
	if err != nil {
		log.Printf("❌ %v\n", err)
		result.Breakdown = failedBreakdown(profile, err)
		result.Suggestions = []string{fmt.Sprintf("Could not read %s. Upload a text-based PDF, DOCX or TXT file.", doc.Filename)}
		return result
	}

	result.Breakdown, result.Suggestions = p.ScoreText(ctx, extracted.Text, profile, weights)
	return result
}

// ScoreText scores already extracted text and returns the breakdown with its
// suggestions.
func (p *pipeline) ScoreText(
	ctx context.Context,
	text string,
	profile *models.RoleProfile,
	weights models.Weights,
) (models.ScoreBreakdown, []string) {
	sections := p.splitter.Split(text)
	kw := ScoreKeywords(text, profile, p.opts.KeywordWeights)

	sem, err := p.semantic.ScoreSemantic(ctx, text, profile)
	// Without an embedder every result is degraded; that is logged once at startup.
	if err != nil && p.semantic.HasEmbedder() {
		log.Printf("⚠️  %v, using statistical similarity only\n", err)
	}

	breakdown := Aggregate(kw, sem, weights)
	suggestions := Suggest(kw.MissingRequired, kw.MissingNiceToHave, sections, p.opts.MaxSuggestions)
	return breakdown, suggestions
}

func failedBreakdown(profile *models.RoleProfile, err error) models.ScoreBreakdown {
	missing := append(append([]string{}, profile.RequiredKeywords...), profile.NiceToHaveKeywords...)
	return models.ScoreBreakdown{
		MatchedKeywords:   []string{},
		MissingKeywords:   missing,
		MissingRequired:   nonNil(append([]string{}, profile.RequiredKeywords...)),
		MissingNiceToHave: nonNil(append([]string{}, profile.NiceToHaveKeywords...)),
		ExtractionFailed:  true,
		Error:             err.Error(),
	}
}

// CompareRoles scores one resume against several roles, best fit first.
// Unlike batch scoring, an unreadable document is an error here since there is
// nothing to compare.
func (p *pipeline) CompareRoles(
	ctx context.Context,
	doc models.ResumeDocument,
	profiles []*models.RoleProfile,
	weights models.Weights,
) ([]models.RoleFit, error) {
	extracted, err := p.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	fits := make([]models.RoleFit, 0, len(profiles))
	for _, profile := range profiles {
		breakdown, _ := p.ScoreText(ctx, extracted.Text, profile, weights)
		fits = append(fits, models.RoleFit{
			Role:        profile.Name,
			DisplayName: profile.DisplayName(),
			Breakdown:   breakdown,
		})
	}

	sort.SliceStable(fits, func(i, j int) bool {
		return fits[i].Breakdown.CombinedScore > fits[j].Breakdown.CombinedScore
	})
	return fits, nil
}

// RoleFeedback gives keyword-only feedback for a free-typed role name. The
// returned profile is nil when the role is unknown.
func (p *pipeline) RoleFeedback(text, roleName string, store ProfileStore) (*models.RoleProfile, []string) {
	profile, ok := store.Find(roleName)
	if !ok {
		return nil, []string{
			fmt.Sprintf("No profile found for %q. Known roles: %s.", roleName, strings.Join(store.Names(), ", ")),
			"Generic tips: lead with a short summary, quantify impact in every bullet, and keep skills grouped by theme.",
		}
	}

	kw := ScoreKeywords(text, profile, p.opts.KeywordWeights)
	return profile, Suggest(kw.MissingRequired, kw.MissingNiceToHave, p.splitter.Split(text), p.opts.MaxSuggestions)
}

// EmbedResume extracts a resume and returns its pooled embedding.
func (p *pipeline) EmbedResume(ctx context.Context, doc models.ResumeDocument) ([]float32, error) {
	extracted, err := p.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}
	return p.semantic.EmbedText(ctx, extracted.Text)
}
