package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/ingestion"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var resumePath, jobPath, jobURL string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		Long:  "Extract the resume text and ask the model for an ATS-compatibility and job-match analysis.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			resumeText, err := ingestion.ExtractFile(resumePath)
			if err != nil {
				return fmt.Errorf("failed to read resume: %w", err)
			}
			jd, err := jobDescription(ctx, jobPath, jobURL)
			if err != nil {
				return err
			}
			if jd == "" {
				return fmt.Errorf("a job description is required (use --job or --job-url)")
			}

			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			svc, release, err := e.service(ctx)
			if err != nil {
				return err
			}
			defer release()

			analysis, err := svc.AnalyzeResume(ctx, resumeText, jd)
			if err != nil {
				return err
			}
			return root.emit(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVar(&resumePath, "resume", "", "Path to resume file (required)")
	cmd.Flags().StringVar(&jobPath, "job", "", "Path to a job description file")
	cmd.Flags().StringVar(&jobURL, "job-url", "", "URL of a job posting")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
