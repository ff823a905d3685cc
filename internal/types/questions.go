// Package types provides type definitions for structured data exchanged between the
// interview-preparation components.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Difficulty is the closed set of question difficulties.
type Difficulty string

// Difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType is the closed set of question categories.
type QuestionType string

// QuestionType values
const (
	QuestionTechnical   QuestionType = "technical"
	QuestionBehavioral  QuestionType = "behavioral"
	QuestionSituational QuestionType = "situational"
)

// AllQuestionTypes lists question types in their canonical order.
var AllQuestionTypes = []QuestionType{QuestionTechnical, QuestionBehavioral, QuestionSituational}

// IsValidDifficulty reports whether d belongs to the closed difficulty set.
func IsValidDifficulty(d string) bool {
	switch Difficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// IsValidQuestionType reports whether t belongs to the closed question type set.
func IsValidQuestionType(t string) bool {
	switch QuestionType(t) {
	case QuestionTechnical, QuestionBehavioral, QuestionSituational:
		return true
	}
	return false
}

// GeneratedQuestion is a single interview question produced by the model.
// All four fields are always present and the enumerated fields hold values from their closed sets.
type GeneratedQuestion struct {
	Skill      string       `json:"skill"`
	Question   string       `json:"question"`
	Difficulty Difficulty   `json:"difficulty"`
	Type       QuestionType `json:"type"`
}

// QuestionTypeSet selects which question categories to request.
// An empty set means all types.
type QuestionTypeSet struct {
	Technical   bool `json:"technical"`
	Behavioral  bool `json:"behavioral"`
	Situational bool `json:"situational"`
}

// AllTypes returns a set with every question type selected.
func AllTypes() QuestionTypeSet {
	return QuestionTypeSet{Technical: true, Behavioral: true, Situational: true}
}

// List returns the selected types in canonical order.
func (s QuestionTypeSet) List() []QuestionType {
	var out []QuestionType
	if s.Technical {
		out = append(out, QuestionTechnical)
	}
	if s.Behavioral {
		out = append(out, QuestionBehavioral)
	}
	if s.Situational {
		out = append(out, QuestionSituational)
	}
	return out
}

// ParseQuestionTypes builds a set from type names, ignoring unknown names.
func ParseQuestionTypes(names []string) QuestionTypeSet {
	var s QuestionTypeSet
	for _, n := range names {
		switch QuestionType(n) {
		case QuestionTechnical:
			s.Technical = true
		case QuestionBehavioral:
			s.Behavioral = true
		case QuestionSituational:
			s.Situational = true
		}
	}
	return s
}
