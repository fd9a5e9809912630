package osconf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a validation finding.
type ErrorKind string

const (
	ErrorKindMissing ErrorKind = "missing" // required field absent from the document
	ErrorKindInvalid ErrorKind = "invalid" // present but wrong shape or value
	ErrorKindUnknown ErrorKind = "unknown" // not part of the schema (strict mode)
)

// MaxDocumentSize caps how much of a configuration document Load will
// read. Documents here are a dozen fields; anything near the cap is not a
// configuration file.
const MaxDocumentSize = 1 << 20

// ErrDocumentTooLarge reports a document exceeding MaxDocumentSize.
var ErrDocumentTooLarge = errors.New("configuration document too large")

// FieldError describes one validation finding against a document field.
type FieldError struct {
	Kind    ErrorKind
	Section string
	Field   string // empty for section-level findings
	Reason  string
	cause   error
}

// NewMissingField reports a required field absent from the document.
func NewMissingField(section, field string) FieldError {
	return FieldError{
		Kind:    ErrorKindMissing,
		Section: section,
		Field:   field,
		Reason:  "required field is missing",
	}
}

// NewInvalidValue reports a field present with the wrong shape or value.
// cause, when non-nil, stays reachable through errors.Is/As.
func NewInvalidValue(section, field, reason string, cause error) FieldError {
	return FieldError{
		Kind:    ErrorKindInvalid,
		Section: section,
		Field:   field,
		Reason:  reason,
		cause:   cause,
	}
}

// NewUnknownField reports a field the schema does not declare.
func NewUnknownField(section, field string) FieldError {
	return FieldError{
		Kind:    ErrorKindUnknown,
		Section: section,
		Field:   field,
		Reason:  "unknown field",
	}
}

// NewUnknownSection reports a top-level section the schema does not
// declare.
func NewUnknownSection(section string) FieldError {
	return FieldError{
		Kind:    ErrorKindUnknown,
		Section: section,
		Reason:  "unknown section",
	}
}

// Path returns the dotted document location, "section.field" or just
// "section" for section-level findings.
func (e FieldError) Path() string {
	if e.Field == "" {
		return e.Section
	}
	return e.Section + "." + e.Field
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path(), e.Reason)
}

// Unwrap exposes the underlying cause, if any.
func (e FieldError) Unwrap() error { return e.cause }

// ValidationError aggregates every finding from one validation pass.
// It implements the error interface and provides access to all field
// errors.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all findings.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Unwrap exposes each finding so that errors.Is reaches wrapped causes,
// such as size.ErrInvalidFormat inside an invalid-value finding.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe
	}
	return out
}

// ByField returns the first finding at section.field, or nil.
func (e *ValidationError) ByField(section, field string) *FieldError {
	for i := range e.Errors {
		if e.Errors[i].Section == section && e.Errors[i].Field == field {
			return &e.Errors[i]
		}
	}
	return nil
}

// HasKind reports whether any finding has the given kind.
func (e *ValidationError) HasKind(kind ErrorKind) bool {
	for _, fe := range e.Errors {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// LoadError wraps a failure to read or decode a document file.
type LoadError struct {
	Path  string
	cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load configuration %q: %v", e.Path, e.cause)
}

// Unwrap exposes the underlying cause, keeping fs.ErrNotExist and
// ErrDocumentTooLarge reachable through the chain.
func (e *LoadError) Unwrap() error { return e.cause }
