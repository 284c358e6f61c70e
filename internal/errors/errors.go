package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigMissing indicates the .buildrc file was not found at the project root
	ConfigMissing ErrorCode = "CONFIG_MISSING"
	// ConfigInvalid indicates .buildrc is malformed or missing required keys
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// NoSourcesFound indicates discovery yielded zero source files
	NoSourcesFound ErrorCode = "NO_SOURCES_FOUND"
	// UnreadableFile indicates a source file could not be read
	UnreadableFile ErrorCode = "UNREADABLE_FILE"
	// ManifestMissing indicates pyproject.toml or its version field is absent
	ManifestMissing ErrorCode = "MANIFEST_MISSING"
	// ArtifactMissing indicates the built bundle does not exist yet
	ArtifactMissing ErrorCode = "ARTIFACT_MISSING"
	// WriteFailed indicates the output artifact could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// BuildError represents a bundler error with a stable code and message
type BuildError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewBuildError creates a new BuildError
func NewBuildError(code ErrorCode, message string, cause error) *BuildError {
	return &BuildError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *BuildError) WithDetails(details interface{}) *BuildError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigMissing: {
		{
			Command:     "lcb init",
			Safe:        true,
			Description: "Create a default .buildrc at the project root",
		},
	},
	ArtifactMissing: {
		{
			Command:     "lcb build",
			Safe:        true,
			Description: "Build the bundle before stamping it",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

// CodeOf returns the stable code of err if it is a BuildError,
// or InternalError otherwise.
func CodeOf(err error) ErrorCode {
	if be, ok := err.(*BuildError); ok {
		return be.Code
	}
	return InternalError
}
