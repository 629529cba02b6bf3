package errors

import (
	"fmt"
)

// ParseError represents a failure to decode a structured document (a settings
// file or a saved plan result) with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures settings validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PlanError represents a failure while acquiring a plan from the terraform
// binary: init failure, plan failure, or unparseable show output. Stage names
// the terraform subcommand that failed.
type PlanError struct {
	Stage  string
	Stderr string
	Err    error
}

// NewPlanError constructs a PlanError for the given terraform stage.
func NewPlanError(stage string, stderr string, err error) error {
	return &PlanError{Stage: stage, Stderr: stderr, Err: err}
}

func (e *PlanError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("terraform %s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("terraform failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *PlanError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AnalysisError indicates a failure while generating or decoding the LLM
// security assessment.
type AnalysisError struct {
	Provider string
	Message  string
	Err      error
}

// NewAnalysisError constructs an AnalysisError for the given provider.
func NewAnalysisError(provider string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &AnalysisError{Provider: provider, Message: message, Err: err}
}

func (e *AnalysisError) Error() string {
	if e == nil {
		return ""
	}
	if e.Provider != "" {
		return fmt.Sprintf("analysis error [%s]: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("analysis error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *AnalysisError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
