package normalize

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func direct(t *testing.T, text string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestNormalize_DirectJSON(t *testing.T) {
	inputs := []string{
		`{"key": "value"}`,
		`{"atsScore": 87, "nested": {"list": [1, 2.5, "x", null, true]}}`,
		`[{"skill": "Go", "question": "What is a channel?", "difficulty": "easy", "type": "technical"}]`,
		"  \n{\"padded\": true}\n  ",
		`{"big": 12345678901234567890}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Normalize(input)
			require.NoError(t, err)
			assert.Equal(t, direct(t, input), got)
		})
	}
}

func TestNormalize_FencedBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json fence",
			input: "```json\n{\"grade\": \"Good\"}\n```",
			want:  `{"grade": "Good"}`,
		},
		{
			name:  "uppercase label",
			input: "```JSON\n{\"grade\": \"Good\"}\n```",
			want:  `{"grade": "Good"}`,
		},
		{
			name:  "unlabeled fence",
			input: "```\n[1, 2, 3]\n```",
			want:  `[1, 2, 3]`,
		},
		{
			name:  "fence with surrounding prose",
			input: "Here is the analysis:\n```json\n{\"atsScore\": 70}\n```\nLet me know if you need more.",
			want:  `{"atsScore": 70}`,
		},
		{
			name:  "windows line endings",
			input: "```json\r\n{\"a\": 1}\r\n```",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, direct(t, tt.want), got)
		})
	}
}

func TestNormalize_ProseAroundObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "preamble and epilogue",
			input: "Sure! Here is the result: {\"grade\": \"Fair\", \"strengths\": [\"clear\"]} Hope this helps.",
			want:  `{"grade": "Fair", "strengths": ["clear"]}`,
		},
		{
			name:  "nested objects",
			input: "Output:\n{\"outer\": {\"inner\": \"value\"}}\nDone",
			want:  `{"outer": {"inner": "value"}}`,
		},
		{
			name:  "braces inside strings",
			input: "Result: {\"template\": \"Hello {name}!\"} end",
			want:  `{"template": "Hello {name}!"}`,
		},
		{
			name:  "bracketed citation before object",
			input: "As noted in [1], here is the result: {\"atsScore\": 80, \"jobMatchScore\": 70} Hope this helps.",
			want:  `{"atsScore": 80, "jobMatchScore": 70}`,
		},
		{
			name:  "bracketed aside before object holding a list",
			input: "See [notes] below. {\"strengths\": [\"clear\"]} Thanks.",
			want:  `{"strengths": ["clear"]}`,
		},
		{
			name:  "array embedded in prose",
			input: "Here are the questions:\n[{\"skill\": \"Go\"}, {\"skill\": \"SQL\"}]\nGood luck!",
			want:  `[{"skill": "Go"}, {"skill": "SQL"}]`,
		},
		{
			name:  "single-line fence falls through to braces",
			input: "```json {\"a\": 1} ```",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, direct(t, tt.want), got)
		})
	}
}

func TestNormalize_Failures(t *testing.T) {
	inputs := []string{
		"",
		"I'm sorry, I can't help with that.",
		"42",
		`"just a string"`,
		"{not: valid json}",
		"close } before open {",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Normalize(input)
			require.Error(t, err)
			assert.Nil(t, got)

			var extractErr *ExtractionError
			require.True(t, errors.As(err, &extractErr))
			assert.Equal(t, input, extractErr.Prefix)
		})
	}
}

func TestExtractionError_TruncatesPrefix(t *testing.T) {
	raw := strings.Repeat("x", 500)
	_, err := Normalize(raw)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, strings.Repeat("x", 200)+"...", extractErr.Prefix)
	assert.Contains(t, extractErr.Error(), "could not extract valid JSON")
}

func TestCompact(t *testing.T) {
	v, err := Normalize(`{ "a" : [ 1, 2 ] }`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, Compact(v))
}
