//nolint:revive // types is a standard Go package name pattern
package types

// Grade is the closed set of answer grades.
type Grade string

// Grade values, worst to best
const (
	GradePoor      Grade = "Poor"
	GradeFair      Grade = "Fair"
	GradeGood      Grade = "Good"
	GradeExcellent Grade = "Excellent"
)

// GradeResult is the structured feedback for a candidate answer.
type GradeResult struct {
	Grade       Grade    `json:"grade"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	ModelAnswer string   `json:"modelAnswer"`
}

// FallbackGradeResult returns the fixed result substituted when grading fails.
func FallbackGradeResult() GradeResult {
	return GradeResult{
		Grade:       GradeFair,
		Strengths:   []string{"N/A"},
		Weaknesses:  []string{"N/A"},
		Suggestions: []string{"N/A"},
		ModelAnswer: "Refer to documentation.",
	}
}

// ParseGrade canonicalizes a grade name case-insensitively.
// The second return value is false when the name is outside the closed set.
func ParseGrade(s string) (Grade, bool) {
	for _, g := range []Grade{GradePoor, GradeFair, GradeGood, GradeExcellent} {
		if equalFold(s, string(g)) {
			return g, true
		}
	}
	return "", false
}
