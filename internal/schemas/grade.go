package schemas

import "github.com/jonathan/skillmatrix/internal/types"

// ValidateGrade repairs a normalized grading response field by field.
// Missing or mistyped lists become empty, an unknown grade becomes Fair and a missing
// model answer becomes empty. A non-object value yields the fixed fallback result.
func ValidateGrade(value any) (types.GradeResult, Report) {
	var report Report

	obj, ok := value.(map[string]any)
	if !ok {
		report.Malformed = true
		return types.FallbackGradeResult(), report
	}

	result := types.GradeResult{
		Strengths:   listField(obj, "strengths", &report),
		Weaknesses:  listField(obj, "weaknesses", &report),
		Suggestions: listField(obj, "suggestions", &report),
		ModelAnswer: stringField(obj, "modelAnswer", &report),
	}

	raw, present := obj["grade"]
	name, isString := raw.(string)
	grade, valid := types.ParseGrade(name)
	switch {
	case !present:
		report.repair("grade missing, defaulted to %s", types.GradeFair)
		grade = types.GradeFair
	case !isString || !valid:
		report.repair("grade %v not recognized, defaulted to %s", raw, types.GradeFair)
		grade = types.GradeFair
	case name != string(grade):
		report.repair("grade %q canonicalized", name)
	}
	result.Grade = grade

	return result, report
}
