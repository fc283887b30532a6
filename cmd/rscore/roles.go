package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the loaded role profiles",
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	c, err := build()
	if err != nil {
		return err
	}
	defer c.Close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREQUIRED\tNICE TO HAVE\tSOURCE")
	for _, p := range c.Profiles.All() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", p.Name, len(p.RequiredKeywords), len(p.NiceToHaveKeywords), p.Source)
	}
	return tw.Flush()
}
