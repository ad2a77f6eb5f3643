// Package main provides the resume_variants CLI: one master résumé, many
// job-specific variants, rendered to LaTeX and PDF.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile    string
	workspacePath string
	verbose       bool
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:   "resume_variants",
	Short: "Tailor one master resume into job-specific variants",
	Long: "resume_variants keeps a master resume and a set of named variants that override it " +
		"(toggles, rewritten bullets, reordering, added and removed entries), renders any of them to LaTeX/PDF, " +
		"and can ask an LLM which entries matter for a job description.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "Path to the workspace database (overrides config and RESUME_WORKSPACE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
