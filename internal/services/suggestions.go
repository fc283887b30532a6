package services

import (
	"fmt"
	"strings"
)

const DefaultMaxSuggestions = 5

type tip struct {
	section SectionLabel
	advice  string
}

// knownTips covers the keywords that show up across the bundled role profiles.
// Keys are lower-case.
var knownTips = map[string]tip{
	"python":              {SectionSkills, "Show Python depth through projects or repos and name the libraries you used (pandas, numpy, scikit-learn)."},
	"sql":                 {SectionSkills, "Quantify SQL work: window functions, CTEs, query optimization and the size of the datasets you queried."},
	"r":                   {SectionSkills, "List R alongside the packages you rely on (tidyverse, ggplot2) and one analysis you shipped with it."},
	"machine learning":    {SectionExperience, "Describe 2-3 models you trained end-to-end, with metrics (ROC-AUC, F1) and business impact."},
	"statistics":          {SectionExperience, "Add statistical work: hypothesis tests, confidence intervals, A/B tests you ran."},
	"pandas":              {SectionSkills, "Highlight data wrangling with pandas: groupby, merges, time-series resampling."},
	"numpy":               {SectionSkills, "Mention vectorization and the performance gains you got from NumPy."},
	"scikit-learn":        {SectionSkills, "Name the pipelines, cross-validation and model selection techniques you used."},
	"data visualization":  {SectionProjects, "Link one or two dashboards or plots and name the tools (Matplotlib, Plotly, Tableau)."},
	"feature engineering": {SectionExperience, "Describe domain features you created and why they helped."},
	"model evaluation":    {SectionExperience, "Report metrics clearly and compare baselines against final models."},
	"deep learning":       {SectionProjects, "Note PyTorch or TensorFlow projects with the problem, data size and results."},
	"nlp":                 {SectionProjects, "State the NLP tasks (classification, NER, QA) and datasets, and link demos."},
	"mlops":               {SectionExperience, "Mention experiment tracking, CI, a model registry and how models were deployed."},
	"docker":              {SectionSkills, "Say what you containerized and how the images were built and shipped."},
	"kubernetes":          {SectionExperience, "Describe the workloads you ran on Kubernetes and what you operated (deployments, autoscaling)."},
	"cloud":               {SectionExperience, "Show pipelines on AWS, GCP or Azure and name the services used."},
	"excel":               {SectionSkills, "Mention advanced Excel: pivot tables, lookups, macros."},
	"tableau":             {SectionSkills, "Link a public Tableau dashboard and the decision it supported."},
	"power bi":            {SectionSkills, "Describe the Power BI reports you built and who used them."},
}

var sectionTitles = map[SectionLabel]string{
	SectionSkills:     "Skills",
	SectionExperience: "Experience",
	SectionProjects:   "Projects",
}

// Suggest turns missing keywords into ordered improvement tips. Required
// keywords come first, in profile order, then nice-to-have ones; the list is
// capped at max. Same input, same output.
func Suggest(missingRequired, missingNice []string, sections ResumeSections, max int) []string {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	var out []string
	for _, group := range []struct {
		keywords []string
		required bool
	}{{missingRequired, true}, {missingNice, false}} {
		for _, kw := range group.keywords {
			if len(out) >= max {
				return out
			}
			out = append(out, suggestionFor(kw, group.required, sections))
		}
	}

	if len(out) == 0 {
		out = append(out, "Strong coverage already. Consider tightening bullets, quantifying impact, and linking to your work.")
	}
	return out
}

func suggestionFor(keyword string, required bool, sections ResumeSections) string {
	key := strings.ToLower(strings.TrimSpace(keyword))
	t, known := knownTips[key]
	if !known {
		t = tip{section: guessSection(key), advice: fmt.Sprintf("Add concrete evidence of %s (projects, metrics, or links).", keyword)}
	}

	priority := "nice to have"
	if required {
		priority = "required"
	}

	title := sectionTitles[t.section]
	where := fmt.Sprintf("mention it in your %s section", title)
	if sections != nil && !sections.Has(t.section) {
		where = fmt.Sprintf("no %s section was detected, consider adding one", title)
	}

	return fmt.Sprintf("%s (%s): %s. %s", titleCase(keyword), priority, where, t.advice)
}

// guessSection sends single tools to Skills and multi-word practices to
// Experience.
func guessSection(keyword string) SectionLabel {
	if len(strings.Fields(keyword)) > 1 {
		return SectionExperience
	}
	return SectionSkills
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToLower(w) {
			r := []rune(w)
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
