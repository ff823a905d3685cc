package interview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/skillmatrix/internal/llm"
	"github.com/jonathan/skillmatrix/internal/logger"
	"github.com/jonathan/skillmatrix/internal/normalize"
	"github.com/jonathan/skillmatrix/internal/types"
)

// fakeGenerator returns a canned response and records the prompts it was sent.
type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newService(gen llm.Generator) (*Service, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New(gen, logger.FromZap(zap.New(core))), logs
}

var errTransport = &llm.ModelError{Message: "failed to generate content", Cause: errors.New("connection reset")}

func TestGenerateQuestions_Success(t *testing.T) {
	gen := &fakeGenerator{response: "Here you go:\n```json\n[" +
		`{"skill": "Python", "question": "What is a decorator?", "difficulty": "easy", "type": "technical"},` +
		`{"skill": "Docker", "question": "How do layers work?", "difficulty": "medium", "type": "technical"}` +
		"]\n```"}
	svc, _ := newService(gen)

	questions, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{
		Skills: []string{"Python", "Docker"},
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Python", questions[0].Skill)
	assert.Equal(t, types.DifficultyMedium, questions[1].Difficulty)

	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], "Skills: Python, Docker")
	assert.Contains(t, gen.prompts[0], "Experience Level: mid")
}

func TestGenerateQuestions_DropsNonConformingRecords(t *testing.T) {
	gen := &fakeGenerator{response: `[
		{"skill": "Go", "question": "Explain channels.", "difficulty": "hard", "type": "technical"},
		{"skill": "Go", "question": "Missing type", "difficulty": "easy"},
		{"skill": "Go", "question": "Bad difficulty", "difficulty": "extreme", "type": "technical"},
		{"skill": "Go", "question": "Tell me about a conflict.", "difficulty": "Medium", "type": "Behavioral"}
	]`}
	svc, logs := newService(gen)

	questions, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{Skills: []string{"Go"}})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Explain channels.", questions[0].Question)
	assert.Equal(t, types.QuestionBehavioral, questions[1].Type)

	repaired := logs.FilterMessage("model response repaired").All()
	require.Len(t, repaired, 1)
	assert.EqualValues(t, 2, repaired[0].ContextMap()["dropped"])

	violations := logs.FilterMessage("schema violations").All()
	require.Len(t, violations, 1)
	assert.Equal(t, "questions", violations[0].ContextMap()["kind"])
	assert.Contains(t, violations[0].ContextMap()["response"], "Missing type")
}

func TestGenerateQuestions_AllDroppedIsEmptyList(t *testing.T) {
	gen := &fakeGenerator{response: `[{"skill": "Go"}, {"question": "q"}]`}
	svc, _ := newService(gen)

	questions, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{Skills: []string{"Go"}})
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestGenerateQuestions_Failures(t *testing.T) {
	tests := []struct {
		name  string
		gen   *fakeGenerator
		stage string
	}{
		{name: "transport error", gen: &fakeGenerator{err: errTransport}, stage: StageModel},
		{name: "no json", gen: &fakeGenerator{response: "I cannot help with that."}, stage: StageNormalize},
		{name: "object instead of list", gen: &fakeGenerator{response: `{"skill": "Go"}`}, stage: StageValidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newService(tt.gen)

			questions, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{Skills: []string{"Go"}})
			require.Error(t, err)
			assert.Nil(t, questions)

			var failed *GenerationFailed
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, tt.stage, failed.Stage)
			assert.Equal(t, 1, tt.gen.calls(), "no retries")
			assert.Equal(t, 1, logs.FilterMessage("question generation failed").Len())
		})
	}
}

func TestGenerateQuestions_TransportErrorUnwraps(t *testing.T) {
	svc, _ := newService(&fakeGenerator{err: errTransport})

	_, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{Skills: []string{"Go"}})

	var modelErr *llm.ModelError
	assert.ErrorAs(t, err, &modelErr)
}

func TestGenerateQuestions_NormalizeErrorUnwraps(t *testing.T) {
	svc, _ := newService(&fakeGenerator{response: "nothing structured"})

	_, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{Skills: []string{"Go"}})

	var extractErr *normalize.ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestGenerateQuestions_JobDescriptionMode(t *testing.T) {
	gen := &fakeGenerator{response: `[]`}
	svc, _ := newService(gen)

	questions, err := svc.GenerateQuestions(context.Background(), types.QuestionRequest{
		JobDescription: "We need a platform engineer",
		Difficulty:     "hard",
		QuestionTypes:  types.QuestionTypeSet{Behavioral: true},
	})
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Contains(t, gen.prompts[0], "Job Description: We need a platform engineer")
	assert.Contains(t, gen.prompts[0], "Question Types: behavioral")
	assert.Contains(t, gen.prompts[0], "Difficulty Level: hard")
}

func TestGradeAnswer_Success(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"grade": "good",
		"strengths": ["Clear"],
		"weaknesses": ["No example"],
		"suggestions": ["Add an example"],
		"modelAnswer": "Goroutines are cheap threads."
	}`}
	svc, _ := newService(gen)

	result := svc.GradeAnswer(context.Background(), "What is a goroutine?", "Go", "A thread")
	assert.Equal(t, types.GradeGood, result.Grade)
	assert.Equal(t, []string{"Clear"}, result.Strengths)
	assert.Equal(t, "Goroutines are cheap threads.", result.ModelAnswer)
	assert.Contains(t, gen.prompts[0], "CANDIDATE ANSWER: A thread")
}

func TestGradeAnswer_RepairsFields(t *testing.T) {
	gen := &fakeGenerator{response: `{"grade": "Outstanding", "strengths": "not a list"}`}
	svc, logs := newService(gen)

	result := svc.GradeAnswer(context.Background(), "q", "Go", "a")
	assert.Equal(t, types.GradeFair, result.Grade)
	assert.Equal(t, []string{}, result.Strengths)
	assert.Equal(t, []string{}, result.Weaknesses)
	assert.Equal(t, "", result.ModelAnswer)
	assert.Equal(t, 1, logs.FilterMessage("model response repaired").Len())
}

func TestGradeAnswer_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "transport error", gen: &fakeGenerator{err: errTransport}},
		{name: "garbage", gen: &fakeGenerator{response: "Great answer!"}},
		{name: "array instead of object", gen: &fakeGenerator{response: `["Good"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newService(tt.gen)

			result := svc.GradeAnswer(context.Background(), "q", "Go", "a")
			assert.Equal(t, types.FallbackGradeResult(), result)
			assert.Equal(t, types.GradeFair, result.Grade)
			assert.Equal(t, 1, logs.FilterMessage("grading fell back to default result").Len())
		})
	}
}

func TestSynthesizeModelAnswer(t *testing.T) {
	gen := &fakeGenerator{response: "\n**Introduction:**\nREST is an architectural style.\n\nKey Points:\n• Stateless\n"}
	svc, _ := newService(gen)

	answer := svc.SynthesizeModelAnswer(context.Background(), "Explain REST", "REST API", "")
	assert.Equal(t, "Introduction:\nREST is an architectural style.\n\nKey Points:\n• Stateless", answer)
	assert.NotContains(t, answer, "*")
	assert.Contains(t, gen.prompts[0], "DIFFICULTY: medium")
}

func TestSynthesizeModelAnswer_Placeholder(t *testing.T) {
	for _, gen := range []*fakeGenerator{
		{err: errTransport},
		{response: "  ***  "},
	} {
		svc, _ := newService(gen)
		answer := svc.SynthesizeModelAnswer(context.Background(), "q", "Go", "hard")
		assert.Equal(t, ModelAnswerUnavailable, answer)
	}
}

func TestAnalyzeResume_Success(t *testing.T) {
	gen := &fakeGenerator{response: `Analysis follows. {
		"atsScore": 78,
		"jobMatchScore": 64.0,
		"scoreBreakdown": {"skillsMatch": 70, "experienceMatch": 60, "educationMatch": 50},
		"matchingSkills": ["Python"],
		"missingSkills": ["Kubernetes"],
		"atsIssues": [],
		"suggestions": [
			{"category": "skills", "suggestion": "Add Kubernetes", "priority": "high"},
			{"category": "skills", "suggestion": "Incomplete"}
		]
	} Hope this helps.`}
	svc, _ := newService(gen)

	analysis, err := svc.AnalyzeResume(context.Background(), "Python developer", "Needs Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, 78, analysis.ATSScore)
	assert.Equal(t, 64, analysis.JobMatchScore)
	assert.Equal(t, []string{"Kubernetes"}, analysis.MissingSkills)
	require.Len(t, analysis.Suggestions, 1)
	assert.Equal(t, "Add Kubernetes", analysis.Suggestions[0].Suggestion)

	assert.True(t, strings.Contains(gen.prompts[0], "RESUME CONTENT:\nPython developer"))
}

func TestAnalyzeResume_Failures(t *testing.T) {
	tests := []struct {
		name  string
		gen   *fakeGenerator
		stage string
	}{
		{name: "transport error", gen: &fakeGenerator{err: errTransport}, stage: StageModel},
		{name: "no json", gen: &fakeGenerator{response: "Sorry."}, stage: StageNormalize},
		{name: "array", gen: &fakeGenerator{response: `[1, 2, 3]`}, stage: StageValidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.gen)

			_, err := svc.AnalyzeResume(context.Background(), "resume", "jd")
			var analysisErr *AnalysisError
			require.ErrorAs(t, err, &analysisErr)
			assert.Equal(t, tt.stage, analysisErr.Stage)
		})
	}
}

func TestRecognizeSkills(t *testing.T) {
	svc := New(&fakeGenerator{}, nil)

	got := svc.RecognizeSkills("I have 5 years of Python and Docker experience")
	assert.Equal(t, []string{"Docker", "Python"}, got.Sorted())
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "question generation failed at model: boom", (&GenerationFailed{Stage: StageModel, Cause: cause}).Error())
	assert.Equal(t, "resume analysis failed at validate: boom", (&AnalysisError{Stage: StageValidate, Cause: cause}).Error())
}

// tierClient records which tier each call used.
type tierClient struct {
	mu    sync.Mutex
	tiers []llm.ModelTier
}

func (c *tierClient) GenerateContent(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tiers = append(c.tiers, tier)
	return "", errTransport
}

func (c *tierClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (c *tierClient) Close() error { return nil }

func TestNewForClient_RoutesTiers(t *testing.T) {
	client := &tierClient{}
	svc := NewForClient(client, nil)
	ctx := context.Background()

	_, _ = svc.GenerateQuestions(ctx, types.QuestionRequest{Skills: []string{"Go"}})
	svc.GradeAnswer(ctx, "Q", "Go", "A")
	svc.SynthesizeModelAnswer(ctx, "Q", "Go", "")
	_, _ = svc.AnalyzeResume(ctx, "resume", "job")

	assert.Equal(t, []llm.ModelTier{llm.TierStandard, llm.TierStandard, llm.TierLite, llm.TierAdvanced}, client.tiers)
}
