package schemas

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the expected shape of a normalized model response.
type Kind string

// Kinds of model output
const (
	KindQuestions Kind = "questions"
	KindGrade     Kind = "grade"
	KindAnalysis  Kind = "analysis"
)

// Report describes what validation had to change. A zero Report means the value
// conformed as-is.
type Report struct {
	Malformed bool     // top-level value had the wrong shape; result is all defaults
	Repairs   []string // fields replaced with defaults or coerced
	Dropped   int      // list records discarded
}

// Repaired reports whether any repair, drop or shape substitution happened.
func (r Report) Repaired() bool {
	return r.Malformed || len(r.Repairs) > 0 || r.Dropped > 0
}

func (r *Report) repair(format string, args ...any) {
	r.Repairs = append(r.Repairs, fmt.Sprintf(format, args...))
}

// String summarizes the report for logging.
func (r Report) String() string {
	if !r.Repaired() {
		return "ok"
	}
	parts := make([]string, 0, 3)
	if r.Malformed {
		parts = append(parts, "malformed")
	}
	if len(r.Repairs) > 0 {
		parts = append(parts, "repaired: "+strings.Join(r.Repairs, "; "))
	}
	if r.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("dropped %d", r.Dropped))
	}
	return strings.Join(parts, ", ")
}

// Validate dispatches to the validator for kind. It never fails: unknown kinds
// return the value unchanged with a malformed report.
func Validate(value any, kind Kind) (any, Report) {
	switch kind {
	case KindQuestions:
		return ValidateQuestions(value)
	case KindGrade:
		return ValidateGrade(value)
	case KindAnalysis:
		return ValidateAnalysis(value)
	default:
		return value, Report{Malformed: true}
	}
}

// stringList coerces v into a list of strings. Non-string elements are dropped.
// ok is false when v is not a list at all.
func stringList(v any) (out []string, dropped int, ok bool) {
	items, isList := v.([]any)
	if !isList {
		return []string{}, 0, false
	}
	out = make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			dropped++
			continue
		}
		out = append(out, s)
	}
	return out, dropped, true
}

// listField repairs a required string-list field of obj.
func listField(obj map[string]any, key string, report *Report) []string {
	raw, present := obj[key]
	if !present {
		report.repair("%s missing, defaulted to []", key)
		return []string{}
	}
	list, dropped, ok := stringList(raw)
	if !ok {
		report.repair("%s is not a list, defaulted to []", key)
		return list
	}
	if dropped > 0 {
		report.repair("%s: dropped %d non-string items", key, dropped)
	}
	return list
}

// integer extracts an integral number. JSON floats with no fractional part are
// accepted; magnitudes beyond int32 saturate rather than wrap.
func integer(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integer(f)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int(math.Max(math.Min(n, math.MaxInt32), math.MinInt32)), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// scoreField repairs a required integer score of obj, clamped to [0,100].
func scoreField(obj map[string]any, key string, report *Report) int {
	raw, present := obj[key]
	if !present {
		report.repair("%s missing, defaulted to 0", key)
		return 0
	}
	n, ok := integer(raw)
	if !ok {
		report.repair("%s is not an integer, defaulted to 0", key)
		return 0
	}
	if n < 0 || n > 100 {
		report.repair("%s out of range, clamped", key)
		return min(max(n, 0), 100)
	}
	return n
}

// stringField repairs a required string field of obj.
func stringField(obj map[string]any, key string, report *Report) string {
	raw, present := obj[key]
	if !present {
		report.repair("%s missing, defaulted to empty", key)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		report.repair("%s is not a string, defaulted to empty", key)
		return ""
	}
	return s
}

// scalarString renders a scalar JSON value as text. Objects, arrays and null are rejected.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

// canonicalEnum lowercases and trims an enumerated value before set membership checks.
func canonicalEnum(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(s)), true
}
