// Package docdex is a bidirectional mapping engine between typed model
// structs and flat field/value documents suitable for a full-text index.
// Mappings are declared with docdex struct tags (or a programmatic
// Config), registered once in a Registry, and executed by GetDocument and
// GetModel.
package docdex

import (
	"fmt"
	"reflect"

	"github.com/calder-search/docdex/internal/domain"
	"github.com/calder-search/docdex/internal/domain/mapping"
	"github.com/calder-search/docdex/internal/mapper"
)

// Registry resolves model types to their mapping configurations and
// performs recursive mapping of embedded sub-models.
//
// Populate it fully before the first conversion. After that it is
// read-only and safe for unsynchronized concurrent use; the registry
// itself does not synchronize registration.
type Registry struct {
	configs map[reflect.Type]*mapping.Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: map[reflect.Type]*mapping.Config{}}
}

// Register derives T's mapping configuration from docdex struct tags,
// applies the given options, and stores it keyed by T's struct type.
func Register[T any](r *Registry, opts ...RegisterOption) error {
	cfg, err := parseSchema[T]()
	if err != nil {
		return err
	}
	for _, o := range opts {
		o(cfg)
	}
	r.configs[cfg.Type] = cfg
	return nil
}

// MustRegister registers T or panics. Intended for startup wiring.
func MustRegister[T any](r *Registry, opts ...RegisterOption) {
	if err := Register[T](r, opts...); err != nil {
		panic(err)
	}
}

// GetDocument projects a model of a registered type into a flat document.
func GetDocument[T any](r *Registry, model T) (*Document, error) {
	return r.GetDocument(model, "")
}

// GetModel reconstructs a fully typed model of a registered type from a
// flat document. T must be default-constructible (a struct or pointer to
// struct).
func GetModel[T any](r *Registry, doc *Document) (T, error) {
	var zero T
	out, err := r.GetModel(doc, typeOf[T](), "")
	if err != nil {
		return zero, err
	}
	if v, ok := out.(T); ok {
		return v, nil
	}
	v, ok := reflect.ValueOf(out).Elem().Interface().(T)
	if !ok {
		return zero, fmt.Errorf("docdex: reconstructed %T, want %T", out, zero)
	}
	return v, nil
}

// GetDocument maps a model instance under the given name prefix,
// resolving the configuration from the model's runtime type. Top-level
// callers pass an empty prefix; the mapper calls back here for embedded
// sub-models.
func (r *Registry) GetDocument(model any, prefix string) (*Document, error) {
	cfg, err := r.configFor(reflect.TypeOf(model))
	if err != nil {
		return nil, err
	}
	return mapper.ToDocument(cfg, model, r, prefix)
}

// GetModel reconstructs one instance of the target type from the document
// under the given name prefix. The result is a pointer to the target
// struct type.
func (r *Registry) GetModel(doc *Document, target reflect.Type, prefix string) (any, error) {
	cfg, err := r.configFor(target)
	if err != nil {
		return nil, err
	}
	return mapper.ToModel(cfg, doc, r, prefix)
}

func (r *Registry) configFor(t reflect.Type) (*mapping.Config, error) {
	if t == nil {
		return nil, fmt.Errorf("docdex: nil model type: %w", domain.ErrMappingNotFound)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	cfg, ok := r.configs[t]
	if !ok {
		return nil, fmt.Errorf("docdex: type %s: %w", t, domain.ErrMappingNotFound)
	}
	return cfg, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
