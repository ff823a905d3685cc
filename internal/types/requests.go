//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// Experience levels accepted by question generation
const (
	LevelEntry  = "entry"
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelLead   = "lead"
)

// QuestionRequest holds the parameters for question generation.
type QuestionRequest struct {
	Skills          []string        `json:"skills" validate:"omitempty,dive,required"`
	JobDescription  string          `json:"jobDescription"`
	ExperienceLevel string          `json:"experienceLevel"`
	QuestionTypes   QuestionTypeSet `json:"questionTypes"`
	Difficulty      string          `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// Validate checks the request shape. Either skills or a job description must be supplied.
func (r *QuestionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if len(r.Skills) == 0 && strings.TrimSpace(r.JobDescription) == "" {
		return &RequestError{Field: "skills", Message: "either skills or job description must be provided"}
	}
	return nil
}

// ApplyDefaults fills unset optional fields.
func (r *QuestionRequest) ApplyDefaults() {
	if r.ExperienceLevel == "" {
		r.ExperienceLevel = LevelMid
	}
	if r.Difficulty == "" {
		r.Difficulty = string(DifficultyMedium)
	}
}

// GradeRequest is the body of an answer-grading request.
type GradeRequest struct {
	Question   string `json:"question" validate:"required"`
	UserAnswer string `json:"userAnswer" validate:"required"`
	Skill      string `json:"skill" validate:"required"`
}

// Validate validates the GradeRequest using the validator.
func (r *GradeRequest) Validate() error {
	return validate.Struct(r)
}

// ModelAnswerRequest is the body of a model-answer request.
type ModelAnswerRequest struct {
	Question   string `json:"question" validate:"required"`
	Skill      string `json:"skill" validate:"required"`
	Difficulty string `json:"difficulty"`
}

// Validate validates the ModelAnswerRequest using the validator.
func (r *ModelAnswerRequest) Validate() error {
	return validate.Struct(r)
}

// SavedQuestion is a question a user bookmarked for later practice.
type SavedQuestion struct {
	Question   string    `json:"question" validate:"required"`
	Skill      string    `json:"skill" validate:"required"`
	Type       string    `json:"type" validate:"required"`
	Difficulty string    `json:"difficulty" validate:"required"`
	SavedAt    time.Time `json:"saved_at"`
}

// Validate validates the SavedQuestion using the validator.
func (q *SavedQuestion) Validate() error {
	return validate.Struct(q)
}

// AnswerRecord is one graded answer in a user's history.
type AnswerRecord struct {
	Question   string      `json:"question"`
	Skill      string      `json:"skill"`
	UserAnswer string      `json:"user_answer"`
	Result     GradeResult `json:"result"`
	AnsweredAt time.Time   `json:"answered_at"`
}

// RequestError reports a request-level validation failure outside struct tags.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}
