package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillmatrix/internal/types"
)

// File holds every interview prompt template.
const File = "interview.json"

// Template keys in File
const (
	KeyQuestionsSkills         = "questions-skills"
	KeyQuestionsJobDescription = "questions-job-description"
	KeyGradeAnswer             = "grade-answer"
	KeyModelAnswer             = "model-answer"
	KeyResumeAnalysis          = "resume-analysis"
)

// Kind identifies the task a prompt is built for.
type Kind string

// Kind values
const (
	KindQuestions   Kind = "questions"
	KindGrade       Kind = "grade"
	KindModelAnswer Kind = "model-answer"
	KindAnalysis    Kind = "analysis"
)

// QuestionParams are the inputs to a question-generation prompt.
type QuestionParams struct {
	Skills          []string
	JobDescription  string
	ExperienceLevel string
	Difficulty      string
	QuestionTypes   types.QuestionTypeSet
}

// UsesJobDescription reports whether the prompt is driven by the job description.
// That happens only when a description is present and no skills were given.
func (p QuestionParams) UsesJobDescription() bool {
	return strings.TrimSpace(p.JobDescription) != "" && len(p.Skills) == 0
}

// GradeParams are the inputs to an answer-grading prompt.
type GradeParams struct {
	Question string
	Skill    string
	Answer   string
}

// ModelAnswerParams are the inputs to a model-answer prompt.
type ModelAnswerParams struct {
	Question   string
	Skill      string
	Difficulty string
}

// AnalysisParams are the inputs to a resume-analysis prompt.
type AnalysisParams struct {
	ResumeText     string
	JobDescription string
}

// Build renders the prompt for kind. params must be the matching Params type,
// by value or by pointer.
func Build(kind Kind, params any) (string, error) {
	switch kind {
	case KindQuestions:
		switch p := params.(type) {
		case QuestionParams:
			return QuestionPrompt(p)
		case *QuestionParams:
			return QuestionPrompt(*p)
		}
	case KindGrade:
		switch p := params.(type) {
		case GradeParams:
			return GradePrompt(p)
		case *GradeParams:
			return GradePrompt(*p)
		}
	case KindModelAnswer:
		switch p := params.(type) {
		case ModelAnswerParams:
			return ModelAnswerPrompt(p)
		case *ModelAnswerParams:
			return ModelAnswerPrompt(*p)
		}
	case KindAnalysis:
		switch p := params.(type) {
		case AnalysisParams:
			return ResumeAnalysisPrompt(p)
		case *AnalysisParams:
			return ResumeAnalysisPrompt(*p)
		}
	default:
		return "", fmt.Errorf("unknown prompt kind %q", kind)
	}
	return "", fmt.Errorf("prompt kind %q does not accept params of type %T", kind, params)
}

// QuestionPrompt renders a question-generation prompt in skills mode or job-description mode.
func QuestionPrompt(p QuestionParams) (string, error) {
	level := p.ExperienceLevel
	if level == "" {
		level = types.LevelMid
	}
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = string(types.DifficultyMedium)
	}

	data := map[string]string{
		"ExperienceLevel": level,
		"Difficulty":      difficulty,
		"QuestionTypes":   questionTypesLabel(p.QuestionTypes),
	}

	key := KeyQuestionsSkills
	if p.UsesJobDescription() {
		key = KeyQuestionsJobDescription
		data["JobDescription"] = strings.TrimSpace(p.JobDescription)
	} else {
		data["Skills"] = strings.Join(p.Skills, ", ")
	}

	return render(key, data)
}

// GradePrompt renders an answer-grading prompt.
func GradePrompt(p GradeParams) (string, error) {
	return render(KeyGradeAnswer, map[string]string{
		"Question": p.Question,
		"Skill":    p.Skill,
		"Answer":   p.Answer,
	})
}

// ModelAnswerPrompt renders a prompt asking for headed plain text rather than JSON.
func ModelAnswerPrompt(p ModelAnswerParams) (string, error) {
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = string(types.DifficultyMedium)
	}
	return render(KeyModelAnswer, map[string]string{
		"Question":   p.Question,
		"Skill":      p.Skill,
		"Difficulty": difficulty,
	})
}

// ResumeAnalysisPrompt renders a resume-versus-job-description analysis prompt.
func ResumeAnalysisPrompt(p AnalysisParams) (string, error) {
	return render(KeyResumeAnalysis, map[string]string{
		"ResumeText":     p.ResumeText,
		"JobDescription": p.JobDescription,
	})
}

func render(key string, data map[string]string) (string, error) {
	template, err := Get(File, key)
	if err != nil {
		return "", err
	}
	for _, name := range Placeholders(template) {
		if _, ok := data[name]; !ok {
			return "", fmt.Errorf("prompt %q: no value for placeholder %q", key, name)
		}
	}
	return Format(template, data), nil
}

func questionTypesLabel(set types.QuestionTypeSet) string {
	list := set.List()
	if len(list) == 0 {
		return "all types"
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
