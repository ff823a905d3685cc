package interview

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatrix/internal/llm"
	"github.com/jonathan/skillmatrix/internal/types"
)

func TestGradeBatch_PreservesOrder(t *testing.T) {
	var inFlight, peak int32
	gen := llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		if strings.Contains(prompt, "QUESTION: second") {
			return "not json", nil
		}
		return `{"grade": "Excellent", "strengths": [], "weaknesses": [], "suggestions": [], "modelAnswer": ""}`, nil
	})
	svc := New(gen, nil)

	items := []types.GradeRequest{
		{Question: "first", UserAnswer: "a", Skill: "Go"},
		{Question: "second", UserAnswer: "b", Skill: "Go"},
		{Question: "third", UserAnswer: "c", Skill: "Go"},
	}
	results, err := svc.GradeBatch(context.Background(), items, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, types.GradeExcellent, results[0].Grade)
	assert.Equal(t, types.FallbackGradeResult(), results[1])
	assert.Equal(t, types.GradeExcellent, results[2].Grade)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestGradeBatch_CancelledContext(t *testing.T) {
	svc := New(&fakeGenerator{response: `{}`}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GradeBatch(ctx, []types.GradeRequest{{Question: "q", UserAnswer: "a", Skill: "Go"}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGradeBatch_Empty(t *testing.T) {
	svc := New(&fakeGenerator{}, nil)

	results, err := svc.GradeBatch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
