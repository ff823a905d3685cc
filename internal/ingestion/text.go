package ingestion

import (
	"regexp"
	"strings"
)

var (
	runsOfSpace    = regexp.MustCompile(`\s+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted document text. Line structure, headings,
// bullets and indentation survive; runs of spaces and blank lines collapse.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// PDF extraction leaves NUL and form-feed bytes between text runs.
	content = strings.Map(func(r rune) rune {
		switch r {
		case '\x00':
			return -1
		case '\f', '\v':
			return '\n'
		}
		return r
	}, content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets keep their indentation so nesting survives
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := runsOfSpace.ReplaceAllString(trimmed, " ")
	return strings.Repeat(" ", indent) + content
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
