package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexRolesCmd = &cobra.Command{
	Use:   "index-roles",
	Short: "Upsert every role description into the Qdrant role index",
	Long:  "Embeds each loaded role profile and writes it to the Qdrant collection used by 'suggest'. Needs GEMINI_API_KEY and QDRANT_URL.",
	RunE:  runIndexRoles,
}

func init() {
	rootCmd.AddCommand(indexRolesCmd)
}

func runIndexRoles(cmd *cobra.Command, _ []string) error {
	c, err := build()
	if err != nil {
		return err
	}
	defer c.Close()

	if c.RoleIndex == nil {
		return errors.New("role index is not configured: set GEMINI_API_KEY and QDRANT_URL")
	}

	profiles := c.Profiles.All()
	if err := c.RoleIndex.IndexProfiles(cmd.Context(), profiles); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d roles\n", len(profiles))
	return nil
}
