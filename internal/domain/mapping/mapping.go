// Package mapping holds the declarative description of how one model type
// projects into a flat document: scalar field mappings, embedded
// sub-model mappings, custom transform hooks and a document boost.
//
// A Config is built once at registration time and must not be mutated
// afterwards; many concurrent conversions read it unsynchronized.
package mapping

import (
	"reflect"

	"github.com/calder-search/docdex/internal/domain/document"
)

// Accessor abstracts get/set of one named member on a typed model
// instance, plus the static shape of that member. Implementations are
// built once per member at registration time.
type Accessor interface {
	// Name returns the member name on the model type.
	Name() string
	// Collection reports whether the member holds a homogeneous sequence.
	Collection() bool
	// Writable reports whether Set is supported. Read-only members are
	// skipped during document-to-model reconstruction.
	Writable() bool
	// ValueType returns the member's declared type with optional pointer
	// indirection stripped (the slice type for collections).
	ValueType() reflect.Type
	// ElemType returns the element type for collections, nil otherwise.
	ElemType() reflect.Type
	// Get reads the member's value. The second result is false when the
	// value is absent (nil pointer or nil collection).
	Get(model any) (any, bool)
	// Set writes a value to the member on a pointer-to-struct instance.
	Set(model any, value any) error
}

// FieldFlags carries per-field mapping behaviour and indexing hints.
type FieldFlags struct {
	Required   bool
	Analyzed   bool
	Stored     bool
	Compressed bool
	Boost      float32
}

// DocumentFlags converts mapping flags to document entry flags.
func (f FieldFlags) DocumentFlags() document.Flags {
	return document.Flags{
		Analyzed:   f.Analyzed,
		Stored:     f.Stored,
		Compressed: f.Compressed,
		Boost:      f.Boost,
	}
}

// FieldMapping projects one scalar-or-collection member into one or more
// document field entries under a derived name.
type FieldMapping struct {
	Accessor Accessor
	Name     string
	Flags    FieldFlags
}

// EmbeddedMapping projects a nested model, or a collection of nested
// models, under a name prefix.
type EmbeddedMapping struct {
	Accessor Accessor
	// Prefix overrides the default "<MemberName>." name prefix.
	Prefix   string
	Required bool
}

// EffectivePrefix returns the explicit prefix, or "<MemberName>." when
// none is configured.
func (m EmbeddedMapping) EffectivePrefix() string {
	if m.Prefix != "" {
		return m.Prefix
	}
	return m.Accessor.Name() + "."
}

// CustomAction is an escape-hatch transform pair run outside the
// declarative walk. Either side may be nil.
type CustomAction struct {
	// ToDocument mutates the in-progress document after the declarative
	// model-to-document walk.
	ToDocument func(model any, doc *document.Document) error
	// ToModel mutates the partially populated model after the declarative
	// document-to-model walk.
	ToModel func(model any, doc *document.Document) error
}

// Config is the immutable mapping configuration for one model type.
// Field names within one flattened namespace must be unique per
// (prefix, field) pair; the mapper does not resolve collisions.
type Config struct {
	// Type is the model's struct type.
	Type reflect.Type

	Fields        []FieldMapping
	Embedded      []EmbeddedMapping
	CustomActions []CustomAction

	// DocumentBoost, when set, derives the document-level boost from the
	// model instance. Absent means neutral.
	DocumentBoost func(model any) float32
}
