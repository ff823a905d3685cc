// Package normalize recovers structured JSON values from free-form model responses.
//
// Models are instructed to return bare JSON but routinely wrap it in markdown fences or
// surround it with commentary. Normalize tries, in order:
//
//  1. the whole response as JSON
//  2. the content of a fenced code block (```json or a bare ```)
//  3. the span from the first '{' to the last '}' (or '[' to ']' when the array
//     opens first)
//
// The first tier that parses wins.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// fencePattern matches a fenced block labeled json (any case) or unlabeled.
var fencePattern = regexp.MustCompile("(?s)```(?:[jJ][sS][oO][nN])?[ \\t]*\\r?\\n(.*?)\\r?\\n?```")

// errNoObject is returned by the brace tier when the text contains no '{' ... '}' span.
var errNoObject = errors.New("no brace-delimited object found")

// Normalize parses the model response into a JSON object (map[string]any) or
// array ([]any). Scalars are not structured payloads and are rejected.
// It fails with *ExtractionError when no tier yields valid JSON.
func Normalize(raw string) (any, error) {
	text := strings.TrimSpace(raw)

	// Tier 1: direct parse
	v, err := parse(text)
	if err == nil {
		return v, nil
	}
	lastErr := err

	// Tier 2: fenced code block
	if inner, ok := fencedContent(text); ok {
		v, err := parse(inner)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	// Tier 3: first '{' through last '}', or '[' through ']' when the array encloses it
	spans := delimitedSpans(text)
	if len(spans) == 0 {
		lastErr = errNoObject
	}
	for _, span := range spans {
		v, err := parse(span)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	return nil, newExtractionError(raw, lastErr)
}

// parse decodes exactly one JSON value, rejecting trailing data.
// Numbers are kept as json.Number so integers survive unchanged.
func parse(text string) (any, error) {
	if text == "" {
		return nil, errors.New("empty input")
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, errors.New("JSON value is not an object or array")
	}
}

// fencedContent returns the body of the first fenced code block.
func fencedContent(text string) (string, bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// delimitedSpans returns candidate spans in the order they should be tried.
// The array span goes first only when it encloses the object span, so question
// arrays in prose are recovered whole while a bracketed aside before an object
// cannot win over the object.
func delimitedSpans(text string) []string {
	obj, hasObj := span(text, '{', '}')
	arr, hasArr := span(text, '[', ']')
	switch {
	case hasObj && hasArr:
		if strings.IndexByte(text, '[') < strings.IndexByte(text, '{') &&
			strings.LastIndexByte(text, ']') > strings.LastIndexByte(text, '}') {
			return []string{arr, obj}
		}
		return []string{obj, arr}
	case hasObj:
		return []string{obj}
	case hasArr:
		return []string{arr}
	}
	return nil
}

// span returns text from the first open to the last close delimiter, inclusive.
func span(text string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(text, opening)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Compact re-encodes a normalized value as compact JSON, mainly for logging.
func Compact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
