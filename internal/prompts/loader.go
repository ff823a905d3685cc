// Package prompts provides a loader for externalized LLM prompt templates.
// Templates live in embedded JSON files keyed by name; placeholders use the
// {{.Name}} form.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// Set is the parsed content of one template file.
type Set map[string]string

// Keys returns the template names in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var (
	sets   = make(map[string]Set)
	setsMu sync.RWMutex
)

// Load parses filename from the embedded files, caching the result.
func Load(filename string) (Set, error) {
	setsMu.RLock()
	set, ok := sets[filename]
	setsMu.RUnlock()
	if ok {
		return set, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	setsMu.Lock()
	sets[filename] = set
	setsMu.Unlock()
	return set, nil
}

// Get returns the template stored under key in filename.
func Get(filename, key string) (string, error) {
	set, err := Load(filename)
	if err != nil {
		return "", err
	}
	template, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// List returns the sorted template names in filename.
func List(filename string) ([]string, error) {
	set, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return set.Keys(), nil
}

// clearCache drops parsed files so the next Load re-reads them.
func clearCache() {
	setsMu.Lock()
	sets = make(map[string]Set)
	setsMu.Unlock()
}

// Placeholders returns the distinct placeholder names in template, in order of
// first appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Format substitutes {{.Key}} placeholders from data in a single pass, so
// placeholder text inside a value is left untouched. Unknown placeholders stay.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "{{."), "}}")
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}
