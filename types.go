package docdex

import (
	"github.com/calder-search/docdex/internal/domain"
	"github.com/calder-search/docdex/internal/domain/document"
	"github.com/calder-search/docdex/internal/domain/mapping"
)

// Document is the flat field/value conversion target and source. See
// internal/domain/document for the full contract.
type Document = document.Document

// Field is one named entry in a flat document.
type Field = document.Field

// Flags carries per-entry indexing hints.
type Flags = document.Flags

// NeutralBoost is the default relevance weight.
const NeutralBoost = document.NeutralBoost

// NewDocument creates an empty document with neutral boost.
func NewDocument() *Document {
	return document.New()
}

// Config is a programmatic mapping configuration for one model type.
type Config = mapping.Config

// FieldMapping projects one member into document field entries.
type FieldMapping = mapping.FieldMapping

// FieldFlags carries per-field mapping behaviour and indexing hints.
type FieldFlags = mapping.FieldFlags

// EmbeddedMapping projects a nested model under a name prefix.
type EmbeddedMapping = mapping.EmbeddedMapping

// CustomAction is an escape-hatch transform pair run outside the
// declarative walk.
type CustomAction = mapping.CustomAction

// Accessor abstracts member access for programmatic configurations.
type Accessor = mapping.Accessor

// Sentinel errors surfaced by conversions. Match with errors.Is.
var (
	ErrMissingRequiredValue   = domain.ErrMissingRequiredValue
	ErrValueParse             = domain.ErrValueParse
	ErrUnsupportedMemberShape = domain.ErrUnsupportedMemberShape
	ErrMappingNotFound        = domain.ErrMappingNotFound
	ErrDocumentNotFound       = domain.ErrDocumentNotFound
	ErrInvalidDocumentID      = domain.ErrInvalidDocumentID
)

// ParseError carries the field name and raw value of a failed parse.
type ParseError = domain.ParseError

// RequiredValueError carries the field name of a missing required value.
type RequiredValueError = domain.RequiredValueError
