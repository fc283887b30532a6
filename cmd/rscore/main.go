// Package main implements rscore, the command-line front end of the resume
// scorer.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-scorer/internal/bootstrap"
	"alfredoptarigan/resume-scorer/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "rscore",
	Short: "Score and rank resumes against role profiles",
	Long:  "rscore ranks resumes (PDF, DOCX, TXT) against YAML role profiles using keyword coverage and semantic similarity.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

var (
	rolesDir string
	verbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rolesDir, "roles-dir", "", "Directory of role profile YAML files (default from ROLE_PROFILES_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print service logs to stderr")
}

// build loads the config with CLI overrides applied. The profile watcher is
// never started for one-shot commands.
func build() (*bootstrap.Components, error) {
	cfg := config.Load()
	if rolesDir != "" {
		cfg.Profiles.Dir = rolesDir
	}
	return bootstrap.Build(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
