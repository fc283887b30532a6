package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-scorer/internal/services"
)

var compareCmd = &cobra.Command{
	Use:   "compare <resume>",
	Short: "Score one resume against every role",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	c, err := build()
	if err != nil {
		return err
	}
	defer c.Close()

	doc, err := services.LoadDocument(args[0])
	if err != nil {
		return err
	}

	fits, err := c.Pipeline.CompareRoles(cmd.Context(), doc, c.Profiles.All(), c.Weights)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tCOVERAGE\tSEMANTIC\tCOMBINED")
	for _, f := range fits {
		fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t%.3f\n",
			f.DisplayName, f.Breakdown.KeywordCoverage, f.Breakdown.SemanticSimilarity, f.Breakdown.CombinedScore)
	}
	return tw.Flush()
}
