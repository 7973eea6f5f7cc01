package docdex

import "github.com/calder-search/docdex/internal/domain/mapping"

// RegisterOption adjusts a derived mapping configuration at registration
// time, attaching what struct tags cannot express.
type RegisterOption func(*mapping.Config)

// WithDocumentBoost sets the document-level boost function. The model
// argument is the instance being mapped (a *T during reconstruction, the
// registered value during projection).
func WithDocumentBoost(fn func(model any) float32) RegisterOption {
	return func(cfg *mapping.Config) {
		cfg.DocumentBoost = fn
	}
}

// WithCustomAction appends a transform pair run after the declarative
// walk: toDocument against the in-progress document, toModel against the
// partially populated model (*T). Either may be nil.
func WithCustomAction(toDocument, toModel func(model any, doc *Document) error) RegisterOption {
	return func(cfg *mapping.Config) {
		cfg.CustomActions = append(cfg.CustomActions, mapping.CustomAction{
			ToDocument: toDocument,
			ToModel:    toModel,
		})
	}
}

// WithFields replaces the tag-derived field mappings with an explicit
// programmatic list.
func WithFields(fields ...FieldMapping) RegisterOption {
	return func(cfg *mapping.Config) {
		cfg.Fields = fields
	}
}

// WithEmbedded replaces the tag-derived embedded mappings with an
// explicit programmatic list.
func WithEmbedded(embedded ...EmbeddedMapping) RegisterOption {
	return func(cfg *mapping.Config) {
		cfg.Embedded = embedded
	}
}
