package interview

import "fmt"

// Pipeline stages, reported on failure
const (
	StagePrompt    = "prompt"
	StageModel     = "model"
	StageNormalize = "normalize"
	StageValidate  = "validate"
)

// GenerationFailed reports that question generation produced no usable list.
type GenerationFailed struct {
	Stage string
	Cause error
}

func (e *GenerationFailed) Error() string {
	return fmt.Sprintf("question generation failed at %s: %v", e.Stage, e.Cause)
}

func (e *GenerationFailed) Unwrap() error {
	return e.Cause
}

// AnalysisError reports that resume analysis produced no usable result.
type AnalysisError struct {
	Stage string
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("resume analysis failed at %s: %v", e.Stage, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
