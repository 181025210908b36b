// Package errors defines the error types shared by the rendering pipeline.
// Configuration problems are fatal and abort a conversion; malformed inline
// content is reported as a warning and never aborts anything.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrConfiguration marks a missing or invalid template, style table or
	// processor configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrMalformedContent marks inline content outside the supported vocabulary.
	ErrMalformedContent = errors.New("malformed content")
)

// ConfigurationError describes a structural problem with the rendering
// configuration, e.g. a block type without a template.
type ConfigurationError struct {
	Subject string // "template", "processor", "inline style", ...
	Name    string // block type or tag name
	Variant string // template variant, when relevant
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	target := e.Subject
	if e.Name != "" {
		target = fmt.Sprintf("%s %q", e.Subject, e.Name)
	}
	if e.Variant != "" {
		target = fmt.Sprintf("%s (variant %q)", target, e.Variant)
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %s: %v", target, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %s", target, e.Reason)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

// NewConfigurationError creates a ConfigurationError without a cause.
func NewConfigurationError(subject, name, reason string) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Name: name, Reason: reason}
}

// IsConfiguration reports whether err carries a configuration failure.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// MalformedContentWarning reports a span of inline content that does not
// match the supported vocabulary. The span is passed through unmodified.
type MalformedContentWarning struct {
	Offset  int    // byte offset within the content string
	Snippet string // offending substring
	Reason  string
}

func (w MalformedContentWarning) Error() string {
	return fmt.Sprintf("malformed content at offset %d: %s: %q", w.Offset, w.Reason, w.Snippet)
}

func (w MalformedContentWarning) Unwrap() error {
	return ErrMalformedContent
}
