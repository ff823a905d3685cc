package schemas

import "github.com/jonathan/skillmatrix/internal/types"

// ValidateAnalysis repairs a normalized resume analysis so every field exists.
//
// Scores must be integers and are clamped to [0,100]; anything else becomes 0.
// List fields that are missing or not lists become empty. A suggestion is kept only if
// it carries category, suggestion and priority, and its category and priority belong to
// their closed sets; otherwise it is dropped.
func ValidateAnalysis(value any) (types.ResumeAnalysis, Report) {
	var report Report

	obj, ok := value.(map[string]any)
	if !ok {
		report.Malformed = true
		return emptyAnalysis(), report
	}

	analysis := types.ResumeAnalysis{
		ATSScore:       scoreField(obj, "atsScore", &report),
		JobMatchScore:  scoreField(obj, "jobMatchScore", &report),
		MatchingSkills: listField(obj, "matchingSkills", &report),
		MissingSkills:  listField(obj, "missingSkills", &report),
		ATSIssues:      listField(obj, "atsIssues", &report),
		Suggestions:    []types.Suggestion{},
	}

	if breakdown, ok := obj["scoreBreakdown"].(map[string]any); ok {
		analysis.ScoreBreakdown = types.ScoreBreakdown{
			SkillsMatch:     scoreField(breakdown, "skillsMatch", &report),
			ExperienceMatch: scoreField(breakdown, "experienceMatch", &report),
			EducationMatch:  scoreField(breakdown, "educationMatch", &report),
		}
	} else {
		report.repair("scoreBreakdown missing or not an object, defaulted to zeros")
	}

	items, isList := obj["suggestions"].([]any)
	if !isList {
		report.repair("suggestions missing or not a list, defaulted to []")
	}
	for _, item := range items {
		s, ok := suggestion(item)
		if !ok {
			report.Dropped++
			continue
		}
		analysis.Suggestions = append(analysis.Suggestions, s)
	}

	return analysis, report
}

func suggestion(item any) (types.Suggestion, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return types.Suggestion{}, false
	}

	text, ok := scalarString(obj["suggestion"])
	if !ok {
		return types.Suggestion{}, false
	}
	category, ok := canonicalEnum(obj["category"])
	if !ok || !types.IsValidCategory(category) {
		return types.Suggestion{}, false
	}
	priority, ok := canonicalEnum(obj["priority"])
	if !ok || !types.IsValidPriority(priority) {
		return types.Suggestion{}, false
	}

	return types.Suggestion{Category: category, Suggestion: text, Priority: priority}, true
}

func emptyAnalysis() types.ResumeAnalysis {
	return types.ResumeAnalysis{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		ATSIssues:      []string{},
		Suggestions:    []types.Suggestion{},
	}
}
