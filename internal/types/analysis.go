//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ScoreBreakdown splits the job match score into its components, each in [0,100].
type ScoreBreakdown struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	EducationMatch  int `json:"educationMatch"`
}

// Suggestion is a single actionable resume improvement.
type Suggestion struct {
	Category   string `json:"category"`   // formatting, content, skills
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"` // high, medium, low
}

// ResumeAnalysis scores a resume against a job description.
// Every field is present after validation; lists are never nil.
type ResumeAnalysis struct {
	ATSScore       int            `json:"atsScore"`
	JobMatchScore  int            `json:"jobMatchScore"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	MatchingSkills []string       `json:"matchingSkills"`
	MissingSkills  []string       `json:"missingSkills"`
	ATSIssues      []string       `json:"atsIssues"`
	Suggestions    []Suggestion   `json:"suggestions"`
}

// Suggestion categories
const (
	CategoryFormatting = "formatting"
	CategoryContent    = "content"
	CategorySkills     = "skills"
)

// Suggestion priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// IsValidCategory reports whether c is a known suggestion category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryFormatting, CategoryContent, CategorySkills:
		return true
	}
	return false
}

// IsValidPriority reports whether p is a known suggestion priority.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
