package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredValue signals a required field or embedding with no value.
	ErrMissingRequiredValue = errors.New("missing required value")
	// ErrValueParse signals a document value that could not be converted to the member type.
	ErrValueParse = errors.New("value parse failed")
	// ErrUnsupportedMemberShape signals a member type the mapper cannot project.
	ErrUnsupportedMemberShape = errors.New("unsupported member shape")
	// ErrMappingNotFound signals a model type with no registered mapping.
	ErrMappingNotFound = errors.New("mapping not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocumentID signals a document ID failing validation.
	ErrInvalidDocumentID = errors.New("invalid document ID")
)

// RequiredValueError wraps ErrMissingRequiredValue with the offending field name.
type RequiredValueError struct {
	Field string
}

func (e *RequiredValueError) Error() string {
	return fmt.Sprintf("%s: field %q", ErrMissingRequiredValue.Error(), e.Field)
}

func (e *RequiredValueError) Unwrap() error { return ErrMissingRequiredValue }

// NewRequiredValue creates a missing-required-value error for a field.
func NewRequiredValue(field string) error {
	return &RequiredValueError{Field: field}
}

// ParseError wraps ErrValueParse with the field name and the raw document value.
type ParseError struct {
	Field string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse field %q value %q: %v", e.Field, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return ErrValueParse }

// NewParse creates a value parse error for a field.
func NewParse(field, raw string, err error) error {
	return &ParseError{Field: field, Raw: raw, Err: err}
}

// MemberShapeError wraps ErrUnsupportedMemberShape with member context.
type MemberShapeError struct {
	Member string
	Reason string
}

func (e *MemberShapeError) Error() string {
	return fmt.Sprintf("%s: member %q: %s", ErrUnsupportedMemberShape.Error(), e.Member, e.Reason)
}

func (e *MemberShapeError) Unwrap() error { return ErrUnsupportedMemberShape }

// NewMemberShape creates an unsupported-member-shape error.
func NewMemberShape(member, reason string) error {
	return &MemberShapeError{Member: member, Reason: reason}
}
