// Package interview composes prompt building, the model call, response
// normalization and schema repair into the four interview-preparation tasks.
//
// Each task makes exactly one model call and never retries. Question generation
// and resume analysis surface failures to the caller; grading and model-answer
// synthesis degrade to fixed fallbacks.
package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/skillmatrix/internal/llm"
	"github.com/jonathan/skillmatrix/internal/logger"
	"github.com/jonathan/skillmatrix/internal/normalize"
	"github.com/jonathan/skillmatrix/internal/prompts"
	"github.com/jonathan/skillmatrix/internal/schemas"
	"github.com/jonathan/skillmatrix/internal/skills"
	"github.com/jonathan/skillmatrix/internal/types"
)

// ModelAnswerUnavailable is returned by SynthesizeModelAnswer when the model cannot help.
const ModelAnswerUnavailable = "Unable to generate answer at this time."

var (
	errNotQuestionList = errors.New("response is not a list of questions")
	errNotAnalysis     = errors.New("response is not an analysis object")
)

// Service runs the interview tasks against a Generator. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	questions   llm.Generator
	grader      llm.Generator
	modelAnswer llm.Generator
	analysis    llm.Generator
	log         *logger.Logger
}

// New creates a Service that sends every task to gen. A nil log discards output.
func New(gen llm.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{questions: gen, grader: gen, modelAnswer: gen, analysis: gen, log: log}
}

// NewForClient creates a Service that routes each task to the model tier suited to it:
// structured output on the standard tier, free-text answers on the lite tier and
// resume comparison on the advanced tier.
func NewForClient(client llm.Client, log *logger.Logger) *Service {
	s := New(llm.TierGenerator(client, llm.TierStandard), log)
	s.modelAnswer = llm.TierGenerator(client, llm.TierLite)
	s.analysis = llm.TierGenerator(client, llm.TierAdvanced)
	return s
}

// GenerateQuestions asks the model for interview questions. Records that do not
// conform are dropped; if all are dropped the result is an empty list.
// Any other failure is a *GenerationFailed.
func (s *Service) GenerateQuestions(ctx context.Context, req types.QuestionRequest) ([]types.GeneratedQuestion, error) {
	req.ApplyDefaults()
	params := prompts.QuestionParams{
		Skills:          req.Skills,
		JobDescription:  req.JobDescription,
		ExperienceLevel: req.ExperienceLevel,
		Difficulty:      req.Difficulty,
		QuestionTypes:   req.QuestionTypes,
	}
	log := s.log.With("op", "generate_questions", "job_description_mode", params.UsesJobDescription())

	prompt, err := prompts.QuestionPrompt(params)
	if err != nil {
		return nil, s.generationFailed(log, StagePrompt, err)
	}
	raw, err := s.questions.Generate(ctx, prompt)
	if err != nil {
		return nil, s.generationFailed(log, StageModel, err)
	}
	value, err := normalize.Normalize(raw)
	if err != nil {
		return nil, s.generationFailed(log, StageNormalize, err)
	}

	questions, report := schemas.ValidateQuestions(value)
	if report.Malformed {
		return nil, s.generationFailed(log, StageValidate, errNotQuestionList)
	}
	logReport(log, value, schemas.KindQuestions, report)
	log.Info("questions generated", "count", len(questions))
	return questions, nil
}

func (s *Service) generationFailed(log *logger.Logger, stage string, cause error) error {
	log.Error("question generation failed", "stage", stage, "error", cause)
	return &GenerationFailed{Stage: stage, Cause: cause}
}

// GradeAnswer grades a candidate answer. It never fails: any problem yields
// types.FallbackGradeResult.
func (s *Service) GradeAnswer(ctx context.Context, question, skill, answer string) types.GradeResult {
	log := s.log.With("op", "grade_answer", "skill", skill)

	fallback := func(stage string, err error) types.GradeResult {
		log.Warn("grading fell back to default result", "stage", stage, "error", err)
		return types.FallbackGradeResult()
	}

	prompt, err := prompts.GradePrompt(prompts.GradeParams{Question: question, Skill: skill, Answer: answer})
	if err != nil {
		return fallback(StagePrompt, err)
	}
	raw, err := s.grader.Generate(ctx, prompt)
	if err != nil {
		return fallback(StageModel, err)
	}
	value, err := normalize.Normalize(raw)
	if err != nil {
		return fallback(StageNormalize, err)
	}

	result, report := schemas.ValidateGrade(value)
	if report.Malformed {
		return fallback(StageValidate, errors.New("response is not a grade object"))
	}
	logReport(log, value, schemas.KindGrade, report)
	return result
}

// SynthesizeModelAnswer asks the model for an exemplary answer in headed plain
// text. Asterisks are stripped. It never fails: problems yield ModelAnswerUnavailable.
func (s *Service) SynthesizeModelAnswer(ctx context.Context, question, skill, difficulty string) string {
	log := s.log.With("op", "model_answer", "skill", skill)

	prompt, err := prompts.ModelAnswerPrompt(prompts.ModelAnswerParams{
		Question:   question,
		Skill:      skill,
		Difficulty: difficulty,
	})
	if err != nil {
		log.Warn("model answer unavailable", "stage", StagePrompt, "error", err)
		return ModelAnswerUnavailable
	}
	raw, err := s.modelAnswer.Generate(ctx, prompt)
	if err != nil {
		log.Warn("model answer unavailable", "stage", StageModel, "error", err)
		return ModelAnswerUnavailable
	}

	answer := strings.TrimSpace(strings.ReplaceAll(raw, "*", ""))
	if answer == "" {
		log.Warn("model answer unavailable", "stage", StageValidate, "error", "empty answer")
		return ModelAnswerUnavailable
	}
	return answer
}

// AnalyzeResume scores a resume against a job description. Missing fields are
// repaired with defaults; a response that cannot be located or is not an object
// is an *AnalysisError.
func (s *Service) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error) {
	log := s.log.With("op", "analyze_resume")

	fail := func(stage string, err error) (types.ResumeAnalysis, error) {
		log.Error("resume analysis failed", "stage", stage, "error", err)
		return types.ResumeAnalysis{}, &AnalysisError{Stage: stage, Cause: err}
	}

	prompt, err := prompts.ResumeAnalysisPrompt(prompts.AnalysisParams{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return fail(StagePrompt, err)
	}
	raw, err := s.analysis.Generate(ctx, prompt)
	if err != nil {
		return fail(StageModel, err)
	}
	value, err := normalize.Normalize(raw)
	if err != nil {
		return fail(StageNormalize, err)
	}

	analysis, report := schemas.ValidateAnalysis(value)
	if report.Malformed {
		return fail(StageValidate, errNotAnalysis)
	}
	logReport(log, value, schemas.KindAnalysis, report)
	log.Info("resume analyzed", "ats_score", analysis.ATSScore, "job_match_score", analysis.JobMatchScore)
	return analysis, nil
}

// RecognizeSkills returns the catalog skills mentioned in text.
func (s *Service) RecognizeSkills(text string) types.SkillSet {
	return skills.Recognize(text)
}

// logReport records repairs. At debug level the schema violations and the
// normalized response are logged too.
func logReport(log *logger.Logger, value any, kind schemas.Kind, report schemas.Report) {
	if !report.Repaired() {
		return
	}
	log.Warn("model response repaired", "repairs", report.Repairs, "dropped", report.Dropped)
	if err := schemas.Check(value, kind); err != nil {
		log.Debug("schema violations", "kind", string(kind), "error", err, "response", normalize.Compact(value))
	}
}
