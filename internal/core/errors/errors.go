// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Circuit breaker errors.
var (
	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Language detection and translation errors.
var (
	// ErrLanguageUndetected indicates the post is neither English nor Arabic.
	ErrLanguageUndetected = errors.New("unable to detect language of tweet")

	// ErrTranslationFailed indicates the translation backend returned an error or no text.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrDetectionFailed indicates the detection backend returned an error or no tag.
	ErrDetectionFailed = errors.New("language detection failed")
)

// Model artifact errors.
var (
	// ErrModelNotLoaded indicates the classifier or vectorizer is missing.
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrModelMismatch indicates the vectorizer and classifier disagree on dimensions.
	ErrModelMismatch = errors.New("model dimension mismatch")

	// ErrUnsupportedModel indicates an artifact kind this service cannot evaluate.
	ErrUnsupportedModel = errors.New("unsupported model type")
)

// Response and parsing errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrUnexpectedStatus indicates a remote service answered with a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Validation errors.
var (
	// ErrInvalidInput indicates the request is missing or has a malformed tweet.
	ErrInvalidInput = errors.New("invalid input")
)
