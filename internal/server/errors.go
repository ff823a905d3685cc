// Package server provides the HTTP REST API for interview preparation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/skillmatrix/internal/db"
	"github.com/jonathan/skillmatrix/internal/ingestion"
	"github.com/jonathan/skillmatrix/internal/interview"
	"github.com/jonathan/skillmatrix/internal/types"
)

// ErrNoStore indicates an endpoint that needs persistence was called without a store.
var ErrNoStore = errors.New("persistence is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		requestErr    *types.RequestError
		documentErr   *ingestion.DocumentError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr), errors.As(err, &documentErr),
		errors.Is(err, db.ErrMissingUser):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message shown to API clients for err.
// Model and storage failures are not echoed verbatim.
func PublicMessage(err error) string {
	var (
		validationErr *ErrValidation
		requestErr    *types.RequestError
		documentErr   *ingestion.DocumentError
		generationErr *interview.GenerationFailed
		analysisErr   *interview.AnalysisError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &requestErr):
		return requestErr.Message
	case errors.As(err, &documentErr):
		return documentErr.Message
	case errors.Is(err, db.ErrMissingUser):
		return "X-User-ID header is required"
	case errors.Is(err, ErrNoStore):
		return ErrNoStore.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.As(err, &generationErr):
		return "Failed to generate questions. Please try again."
	case errors.As(err, &analysisErr):
		return "Failed to analyze resume. Please try again."
	}
	if HTTPStatus(err) == http.StatusRequestEntityTooLarge {
		return "Upload exceeds the maximum allowed size"
	}
	return "Internal server error"
}
