package normalize

import "fmt"

// prefixLimit bounds how much of the raw response an ExtractionError carries.
const prefixLimit = 200

// ExtractionError reports that no structured payload could be located in a model response.
type ExtractionError struct {
	Prefix string // leading bytes of the raw response, for diagnostics
	Cause  error  // parse error from the last attempted tier, if any
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not extract valid JSON from response: %v: %q", e.Cause, e.Prefix)
	}
	return fmt.Sprintf("could not extract valid JSON from response: %q", e.Prefix)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newExtractionError(raw string, cause error) *ExtractionError {
	prefix := raw
	if len(prefix) > prefixLimit {
		prefix = prefix[:prefixLimit] + "..."
	}
	return &ExtractionError{Prefix: prefix, Cause: cause}
}
