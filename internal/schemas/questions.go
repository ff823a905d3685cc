package schemas

import "github.com/jonathan/skillmatrix/internal/types"

// ValidateQuestions converts a normalized response into question records.
//
// The value must be an array of objects, or an object holding one under "questions".
// Each record is checked against question.schema.json after lowercasing its enumerated
// fields. A record that fails the schema is dropped whole; survivors keep their order.
// The result is never nil.
func ValidateQuestions(value any) ([]types.GeneratedQuestion, Report) {
	var report Report

	items, ok := questionItems(value)
	if !ok {
		report.Malformed = true
		return []types.GeneratedQuestion{}, report
	}

	questions := make([]types.GeneratedQuestion, 0, len(items))
	for _, item := range items {
		q, ok := questionRecord(item)
		if !ok {
			report.Dropped++
			continue
		}
		questions = append(questions, q)
	}
	return questions, report
}

func questionItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case map[string]any:
		if items, ok := v["questions"].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

func questionRecord(item any) (types.GeneratedQuestion, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return types.GeneratedQuestion{}, false
	}

	record := make(map[string]any, len(obj))
	for k, v := range obj {
		record[k] = v
	}
	for _, key := range []string{"difficulty", "type"} {
		if s, ok := canonicalEnum(record[key]); ok {
			record[key] = s
		}
	}

	if err := validateValue(questionSchema, record); err != nil {
		return types.GeneratedQuestion{}, false
	}

	return types.GeneratedQuestion{
		Skill:      record["skill"].(string),
		Question:   record["question"].(string),
		Difficulty: types.Difficulty(record["difficulty"].(string)),
		Type:       types.QuestionType(record["type"].(string)),
	}, true
}
