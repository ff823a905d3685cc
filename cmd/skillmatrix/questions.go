package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/types"
)

type questionsOptions struct {
	skills     []string
	jobPath    string
	jobURL     string
	level      string
	difficulty string
	types      []string
}

func newQuestionsCmd(root *rootOptions) *cobra.Command {
	opts := &questionsOptions{}

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Generate interview questions",
		Long:  "Generate interview questions for a list of skills, or for a job description when no skills are given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			req, err := opts.request()
			if err != nil {
				return err
			}
			if req.JobDescription, err = jobDescription(ctx, opts.jobPath, opts.jobURL); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
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

			questions, err := svc.GenerateQuestions(ctx, req)
			if err != nil {
				return err
			}
			return root.emit(cmd.OutOrStdout(), questions)
		},
	}

	cmd.Flags().StringSliceVar(&opts.skills, "skills", nil, "Comma-separated skills")
	cmd.Flags().StringVar(&opts.jobPath, "job", "", "Path to a job description file")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "URL of a job posting")
	cmd.Flags().StringVar(&opts.level, "level", types.LevelMid, "Experience level")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", string(types.DifficultyMedium), "Difficulty: easy, medium or hard")
	cmd.Flags().StringSliceVar(&opts.types, "types", nil, "Question types: technical, behavioral, situational (default all)")
	return cmd
}

func (o *questionsOptions) request() (types.QuestionRequest, error) {
	names := splitList(o.types)
	for _, n := range names {
		if !types.IsValidQuestionType(n) {
			return types.QuestionRequest{}, fmt.Errorf("unknown question type %q", n)
		}
	}
	return types.QuestionRequest{
		Skills:          splitList(o.skills),
		ExperienceLevel: o.level,
		Difficulty:      o.difficulty,
		QuestionTypes:   types.ParseQuestionTypes(names),
	}, nil
}
