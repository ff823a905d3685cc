package interview

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatrix/internal/types"
)

// DefaultBatchConcurrency bounds parallel model calls in GradeBatch.
const DefaultBatchConcurrency = 4

// GradeBatch grades independent answers in parallel, at most limit at a time.
// Results are in input order. Each item is a separate GradeAnswer call, so an
// item that fails gets the fallback result; only context cancellation is an error.
func (s *Service) GradeBatch(ctx context.Context, items []types.GradeRequest, limit int) ([]types.GradeResult, error) {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}
	results := make([]types.GradeResult, len(items))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.GradeAnswer(gCtx, item.Question, item.Skill, item.UserAnswer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
