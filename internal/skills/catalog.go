// Package skills recognizes known technical skills in free text.
package skills

import (
	"regexp"
	"strings"
)

// catalogNames lists the canonical skill names that can be recognized.
var catalogNames = []string{
	"Python", "JavaScript", "Java", "C++", "C#",
	"React", "Angular", "Vue", "Node.js",
	"Django", "Flask", "Spring",
	"SQL", "MongoDB", "PostgreSQL",
	"AWS", "Azure", "Docker", "Kubernetes",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
	"Data Structures", "Algorithms",
	"Git", "CI/CD", "REST API", "GraphQL",
}

type entry struct {
	name    string
	pattern *regexp.Regexp
}

var catalog = buildCatalog(catalogNames)

func buildCatalog(names []string) []entry {
	out := make([]entry, len(names))
	for i, name := range names {
		out[i] = entry{name: name, pattern: regexp.MustCompile(termPattern(name))}
	}
	return out
}

// termPattern builds a case-insensitive whole-term pattern for name.
// \b only works next to word characters, so terms that start or end with a
// symbol (C++, C#) get an explicit non-word-or-edge guard on that side.
func termPattern(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	body := strings.Join(words, `\s+`)

	left := `\b`
	if !isWordByte(name[0]) {
		left = `(?:^|\W)`
	}
	right := `\b`
	if !isWordByte(name[len(name)-1]) {
		right = `(?:$|[^\w+#])`
	}
	return `(?i)` + left + body + right
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// Catalog returns the recognizable skill names in catalog order.
func Catalog() []string {
	out := make([]string, len(catalogNames))
	copy(out, catalogNames)
	return out
}
