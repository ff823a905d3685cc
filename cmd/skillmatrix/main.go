// Package main provides the skillmatrix command: the interview-preparation HTTP API
// server plus one-shot commands for each model task.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	apiKey     string
	logMode    string
	model      string
	format     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "skillmatrix",
		Short:         "SkillMatrix interview preparation service",
		Long:          "SkillMatrix recognizes skills in resumes, generates and grades interview questions, and scores resumes against job descriptions using Gemini.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to JSON config file")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	root.PersistentFlags().StringVar(&opts.logMode, "log-mode", "", "Log mode: dev or prod (overrides LOG_MODE)")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "Gemini model to use for every task")
	root.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "Output format: json or text")

	root.AddCommand(
		newServeCmd(opts),
		newSkillsCmd(opts),
		newQuestionsCmd(opts),
		newGradeCmd(opts),
		newAnswerCmd(opts),
		newAnalyzeCmd(opts),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
