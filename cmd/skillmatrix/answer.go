package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/types"
)

func newAnswerCmd(root *rootOptions) *cobra.Command {
	var req types.ModelAnswerRequest

	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Print a model answer for a question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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

			_, err = fmt.Fprintln(cmd.OutOrStdout(), svc.SynthesizeModelAnswer(ctx, req.Question, req.Skill, req.Difficulty))
			return err
		},
	}

	cmd.Flags().StringVar(&req.Question, "question", "", "Interview question (required)")
	cmd.Flags().StringVar(&req.Skill, "skill", "", "Skill area (required)")
	cmd.Flags().StringVar(&req.Difficulty, "difficulty", "", "Difficulty: easy, medium or hard (default medium)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}
