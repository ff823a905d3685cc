package schemas

import "fmt"

// Check reports whether a normalized value conforms to the embedded schema for kind
// without repairing it. For KindQuestions every array element is checked as a record.
func Check(value any, kind Kind) error {
	switch kind {
	case KindQuestions:
		items, ok := questionItems(value)
		if !ok {
			return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "expected an array of questions"}}}
		}
		combined := &ValidationError{}
		for i, item := range items {
			if err := validateValue(questionSchema, item); err != nil {
				if ve, ok := err.(*ValidationError); ok {
					for _, fe := range ve.Errors {
						fe.Field = fmt.Sprintf("[%d].%s", i, fe.Field)
						combined.Errors = append(combined.Errors, fe)
					}
					continue
				}
				return err
			}
		}
		if len(combined.Errors) > 0 {
			return combined
		}
		return nil
	case KindGrade:
		return validateValue(gradeSchema, value)
	case KindAnalysis:
		return validateValue(analysisSchema, value)
	default:
		return fmt.Errorf("unknown schema kind %q", kind)
	}
}
