package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume>...",
	Short: "Rank resumes against one role",
	Long:  "Scores every given resume against a role profile (or a job description file) and prints the ranking. Unreadable files are ranked last and flagged.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var (
	scoreRole           string
	scoreJobDescription string
	scoreKeywordWeight  float64
	scoreSemanticWeight float64
	scoreOutput         string
	scoreJSON           bool
	scoreSuggestions    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreRole, "role", "r", "", "Role profile name, e.g. data_scientist")
	scoreCmd.Flags().StringVarP(&scoreJobDescription, "job-description", "j", "", "Path to a job description text file (overrides --role)")
	scoreCmd.Flags().Float64Var(&scoreKeywordWeight, "keyword-weight", 0, "Keyword coverage weight (default from KEYWORD_WEIGHT)")
	scoreCmd.Flags().Float64Var(&scoreSemanticWeight, "semantic-weight", 0, "Semantic similarity weight (default from SEMANTIC_WEIGHT)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Write the ranking as CSV to this path")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the ranking as JSON")
	scoreCmd.Flags().BoolVar(&scoreSuggestions, "suggestions", false, "Print improvement suggestions under each resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	c, err := build()
	if err != nil {
		return err
	}
	defer c.Close()

	profile, err := resolveProfile(c.Profiles, scoreRole, scoreJobDescription)
	if err != nil {
		return err
	}

	docs := make([]models.ResumeDocument, 0, len(args))
	for _, path := range args {
		doc, err := services.LoadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	weights := c.Weights
	if scoreKeywordWeight != 0 || scoreSemanticWeight != 0 {
		var cfgErr *services.ConfigurationError
		weights, cfgErr = services.NormalizeWeights(models.Weights{Keyword: scoreKeywordWeight, Semantic: scoreSemanticWeight})
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", cfgErr)
		}
	}

	ranked := c.Pool.ScoreBatch(cmd.Context(), docs, profile, weights)

	if scoreOutput != "" {
		if err := writeCSVFile(scoreOutput, ranked); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", scoreOutput)
	}

	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	printRanking(cmd, profile, weights, ranked)
	return nil
}

func resolveProfile(store services.ProfileStore, role, jdPath string) (*models.RoleProfile, error) {
	if jdPath != "" {
		data, err := os.ReadFile(jdPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description %s: %w", jdPath, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("job description %s is empty", jdPath)
		}
		return models.AdHocProfile(string(data)), nil
	}

	if role == "" {
		return nil, fmt.Errorf("either --role or --job-description is required (known roles: %s)", strings.Join(store.Names(), ", "))
	}
	profile, ok := store.Find(role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q (known roles: %s)", role, strings.Join(store.Names(), ", "))
	}
	return profile, nil
}

func writeCSVFile(path string, ranked []models.RankedResult) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return writeCSVAndClose(f, path, ranked)
}

// writeCSVAndClose reports a failed Close, which is where buffered data hits
// the disk.
func writeCSVAndClose(wc io.WriteCloser, path string, ranked []models.RankedResult) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return services.WriteCSV(wc, ranked)
}

func printRanking(cmd *cobra.Command, profile *models.RoleProfile, w models.Weights, ranked []models.RankedResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (keyword %.2f / semantic %.2f)\n\n", profile.DisplayName(), w.Keyword, w.Semantic)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRESUME\tCOVERAGE\tSEMANTIC\tCOMBINED\tNOTE")
	for _, r := range ranked {
		note := ""
		switch {
		case r.Breakdown.ExtractionFailed:
			note = "unreadable"
		case r.Breakdown.Degraded:
			note = "statistical only"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.3f\t%.3f\t%s\n",
			r.Rank, r.Filename, r.Breakdown.KeywordCoverage, r.Breakdown.SemanticSimilarity, r.Breakdown.CombinedScore, note)
	}
	tw.Flush()

	if !scoreSuggestions {
		return
	}
	for _, r := range ranked {
		fmt.Fprintf(out, "\n%s\n", r.Filename)
		for _, s := range r.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
}
