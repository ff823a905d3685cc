package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/ingestion"
	"github.com/jonathan/skillmatrix/internal/skills"
)

func newSkillsCmd(root *rootOptions) *cobra.Command {
	var resumePath string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Print the skills recognized in a resume",
		Long:  "Extract text from a PDF, DOCX or plain-text resume and print the recognized catalog skills as a JSON array. No model call is made.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := ingestion.ExtractFile(resumePath)
			if err != nil {
				return fmt.Errorf("failed to read resume: %w", err)
			}
			return root.emit(cmd.OutOrStdout(), skills.Recognize(text))
		},
	}

	cmd.Flags().StringVar(&resumePath, "resume", "", "Path to resume file (required)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
