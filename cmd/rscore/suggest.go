package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-scorer/internal/services"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <resume>",
	Short: "Find the roles closest to a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

var suggestLimit int

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 3, "Number of roles to return")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	c, err := build()
	if err != nil {
		return err
	}
	defer c.Close()

	if c.RoleIndex == nil {
		return errors.New("role index is not configured: set GEMINI_API_KEY and QDRANT_URL, then run 'rscore index-roles'")
	}

	doc, err := services.LoadDocument(args[0])
	if err != nil {
		return err
	}

	vector, err := c.Pipeline.EmbedResume(cmd.Context(), doc)
	if err != nil {
		return err
	}

	matches, err := c.RoleIndex.SearchRoles(cmd.Context(), vector, suggestLimit)
	if err != nil {
		return err
	}

	for _, m := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s %.3f\n", m.Role, m.Score)
	}
	return nil
}
