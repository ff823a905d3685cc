package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/interview"
	"github.com/jonathan/skillmatrix/internal/types"
)

type gradeOptions struct {
	question    string
	skill       string
	answer      string
	batchPath   string
	concurrency int
}

func newGradeCmd(root *rootOptions) *cobra.Command {
	opts := &gradeOptions{}

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade interview answers",
		Long:  "Grade a single answer, or a JSON array of {question, userAnswer, skill} objects with --batch. Grading never fails; unusable model output yields the fallback result.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			items, err := opts.items()
			if err != nil {
				return err
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

			if opts.batchPath == "" {
				item := items[0]
				return root.emit(cmd.OutOrStdout(), svc.GradeAnswer(ctx, item.Question, item.Skill, item.UserAnswer))
			}

			results, err := svc.GradeBatch(ctx, items, opts.concurrency)
			if err != nil {
				return err
			}
			return root.emit(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVar(&opts.question, "question", "", "Interview question")
	cmd.Flags().StringVar(&opts.skill, "skill", "", "Skill being assessed")
	cmd.Flags().StringVar(&opts.answer, "answer", "", "Candidate answer")
	cmd.Flags().StringVar(&opts.batchPath, "batch", "", "Path to a JSON array of answers to grade")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", interview.DefaultBatchConcurrency, "Parallel model calls in batch mode")
	cmd.MarkFlagsMutuallyExclusive("batch", "question")
	return cmd
}

// items returns the answers to grade, validated.
func (o *gradeOptions) items() ([]types.GradeRequest, error) {
	if o.batchPath == "" {
		item := types.GradeRequest{Question: o.question, Skill: o.skill, UserAnswer: o.answer}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("--question, --skill and --answer are required: %w", err)
		}
		return []types.GradeRequest{item}, nil
	}

	data, err := os.ReadFile(o.batchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var items []types.GradeRequest
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
	}
	return items, nil
}
