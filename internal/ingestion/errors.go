package ingestion

import "fmt"

// DocumentError reports a document that could not be turned into text.
type DocumentError struct {
	ContentType string
	Message     string
	Cause       error
}

func (e *DocumentError) Error() string {
	msg := fmt.Sprintf("document error (%s): %s", e.ContentType, e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
