package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: "   \n  \n  ", expected: ""},
		{name: "headings kept", input: "# Title\n  ## Subtitle\nContent here", expected: "# Title\n## Subtitle\nContent here"},
		{name: "bullets kept", input: "- Item 1\n- Item 2\n* Item 3", expected: "- Item 1\n- Item 2\n* Item 3"},
		{name: "unicode bullets keep spacing", input: "Skills\n  •   Go\n  · Docker", expected: "Skills\n  •   Go\n  · Docker"},
		{name: "runs of space collapsed", input: "Line    with \t multiple    spaces", expected: "Line with multiple spaces"},
		{name: "trailing space trimmed", input: "Go   \nRust\t", expected: "Go\nRust"},
		{name: "blank lines capped at one", input: "Line 1\n\n\n\n\nLine 2", expected: "Line 1\n\nLine 2"},
		{name: "line endings", input: "Line 1\r\nLine 2\rLine 3\nLine 4", expected: "Line 1\nLine 2\nLine 3\nLine 4"},
		{name: "nested indentation", input: "Experience\n    Built APIs\n  Led team", expected: "Experience\n    Built APIs\n  Led team"},
		{name: "control bytes", input: "Page one\x00 text\fPage two", expected: "Page one text\nPage two"},
		{name: "non-ASCII untouched", input: "Test with émojis 🚀 and spéciàl chàracters", expected: "Test with émojis 🚀 and spéciàl chàracters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "Senior   Engineer\r\n\n\n\n  - Go,   Docker\n\x00Kubernetes"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}
