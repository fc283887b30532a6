package services

import "fmt"

// ExtractionError means a document produced no usable text. The resume is
// scored as zero and flagged; the batch continues.
type ExtractionError struct {
	Filename string
	Reason   string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Filename, e.Reason, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Filename, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// EmbeddingUnavailableError means the embedding signal could not be computed.
// Semantic scoring falls back to the statistical signal alone.
type EmbeddingUnavailableError struct {
	Cause error
}

func (e *EmbeddingUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding unavailable: %v", e.Cause)
	}
	return "embedding unavailable"
}

func (e *EmbeddingUnavailableError) Unwrap() error {
	return e.Cause
}

// ProfileLoadError is reported once per malformed role file at load time.
type ProfileLoadError struct {
	Path  string
	Cause error
}

func (e *ProfileLoadError) Error() string {
	return fmt.Sprintf("failed to load role profile %s: %v", e.Path, e.Cause)
}

func (e *ProfileLoadError) Unwrap() error {
	return e.Cause
}

// ConfigurationError reports weights that had to be normalized. Never fatal.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}
