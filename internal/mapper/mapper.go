// Package mapper executes the two directional transformations between a
// typed model instance and its flat document representation, driven by a
// mapping.Config.
package mapper

import (
	"fmt"
	"reflect"

	"github.com/calder-search/docdex/internal/codec"
	"github.com/calder-search/docdex/internal/domain"
	"github.com/calder-search/docdex/internal/domain/document"
	"github.com/calder-search/docdex/internal/domain/mapping"
)

// Resolver maps embedded sub-models by resolving the configuration for
// their runtime type. It is injected rather than looked up, so the mapper
// stays testable against a stub.
type Resolver interface {
	GetDocument(model any, prefix string) (*document.Document, error)
	GetModel(doc *document.Document, target reflect.Type, prefix string) (any, error)
}

// ToDocument projects a model instance into a flat document. Field names
// are prefixed with prefix. When res is nil, embedded mappings are
// skipped. The source model is never mutated. Errors abort the whole
// conversion; no partial document is returned.
func ToDocument(cfg *mapping.Config, model any, res Resolver, prefix string) (*document.Document, error) {
	doc := document.New()

	for _, fm := range cfg.Fields {
		if err := fieldToDocument(doc, fm, model, prefix); err != nil {
			return nil, err
		}
	}

	if res != nil {
		for _, em := range cfg.Embedded {
			if err := embeddedToDocument(doc, em, model, res, prefix); err != nil {
				return nil, err
			}
		}
	}

	for _, action := range cfg.CustomActions {
		if action.ToDocument == nil {
			continue
		}
		if err := action.ToDocument(model, doc); err != nil {
			return nil, fmt.Errorf("custom action: %w", err)
		}
	}

	if cfg.DocumentBoost != nil {
		doc.SetBoost(cfg.DocumentBoost(model))
	}

	return doc, nil
}

func fieldToDocument(doc *document.Document, fm mapping.FieldMapping, model any, prefix string) error {
	name := prefix + fm.Name

	value, ok := fm.Accessor.Get(model)
	if !ok {
		if fm.Flags.Required {
			return domain.NewRequiredValue(name)
		}
		doc.AddEmpty(name)
		return nil
	}

	values, err := codec.EncodeAll(name, value)
	if err != nil {
		return err
	}
	// A present but empty collection counts as absent for required fields.
	if len(values) == 0 && fm.Flags.Required {
		return domain.NewRequiredValue(name)
	}

	// Collections always record their cardinality, so instances inside
	// repeated embeddings can pull back exactly their own values.
	if fm.Accessor.Collection() {
		doc.AddItemsCount(name, len(values))
	}
	for _, v := range values {
		doc.Add(name, v, fm.Flags.DocumentFlags())
	}
	return nil
}

func embeddedToDocument(doc *document.Document, em mapping.EmbeddedMapping, model any, res Resolver, prefix string) error {
	value, ok := em.Accessor.Get(model)
	if !ok {
		if em.Required {
			return domain.NewRequiredValue(prefix + em.Accessor.Name())
		}
		// Absent optional embeddings are skipped without a marker, unlike
		// scalar fields. Kept as-is: reconstruction does not depend on it
		// and typically-null references stay cheap.
		return nil
	}

	newPrefix := prefix + em.EffectivePrefix()

	if em.Accessor.Collection() {
		items := reflect.ValueOf(value)
		doc.AddItemsCount(prefix+em.Accessor.Name(), items.Len())
		for i := range items.Len() {
			item := items.Index(i)
			if item.Kind() == reflect.Pointer && item.IsNil() {
				return domain.NewMemberShape(prefix+em.Accessor.Name(), fmt.Sprintf("nil element at index %d", i))
			}
			sub, err := res.GetDocument(item.Interface(), newPrefix)
			if err != nil {
				return err
			}
			doc.Merge(sub)
		}
		return nil
	}

	sub, err := res.GetDocument(value, newPrefix)
	if err != nil {
		return err
	}
	doc.Merge(sub)
	return nil
}

// ToModel reconstructs a fully typed model instance from a flat document.
// The returned value is a pointer to a freshly constructed cfg.Type.
// When res is nil, embedded mappings are skipped. Errors abort the whole
// conversion; no partially valid model is returned.
func ToModel(cfg *mapping.Config, doc *document.Document, res Resolver, prefix string) (any, error) {
	model := reflect.New(cfg.Type).Interface()

	for _, fm := range cfg.Fields {
		if !fm.Accessor.Writable() {
			continue
		}
		if err := fieldToModel(model, fm, doc, prefix); err != nil {
			return nil, err
		}
	}

	if res != nil {
		for _, em := range cfg.Embedded {
			if !em.Accessor.Writable() {
				continue
			}
			if err := embeddedToModel(model, em, doc, res, prefix); err != nil {
				return nil, err
			}
		}
	}

	for _, action := range cfg.CustomActions {
		if action.ToModel == nil {
			continue
		}
		if err := action.ToModel(model, doc); err != nil {
			return nil, fmt.Errorf("custom action: %w", err)
		}
	}

	return model, nil
}

func fieldToModel(model any, fm mapping.FieldMapping, doc *document.Document, prefix string) error {
	name := prefix + fm.Name

	if fm.Accessor.Collection() {
		var raws []string
		counted := doc.HasItemsCount(name)
		if counted {
			n := doc.ExtractItemsCount(name)
			raws = make([]string, 0, n)
			for range n {
				v, ok := doc.Extract(name)
				if !ok {
					break
				}
				raws = append(raws, v)
			}
		} else {
			raws = doc.ExtractValues(name)
		}
		if len(raws) == 0 {
			if fm.Flags.Required {
				return domain.NewRequiredValue(name)
			}
			// No marker and no values: the collection was never mapped,
			// keep the default. A zero-valued marker reconstructs empty.
			if !counted {
				return nil
			}
		}
		value, err := codec.DecodeSlice(name, raws, fm.Accessor.ValueType())
		if err != nil {
			return err
		}
		return fm.Accessor.Set(model, value)
	}

	raw, ok := doc.Extract(name)
	if !ok {
		if fm.Flags.Required {
			return domain.NewRequiredValue(name)
		}
		// Absent or empty-marked optional fields keep the default value.
		return nil
	}
	value, err := codec.Decode(name, raw, fm.Accessor.ValueType())
	if err != nil {
		return err
	}
	return fm.Accessor.Set(model, value)
}

func embeddedToModel(model any, em mapping.EmbeddedMapping, doc *document.Document, res Resolver, prefix string) error {
	newPrefix := prefix + em.EffectivePrefix()

	if em.Accessor.Collection() {
		// No marker means the collection was never mapped; keep the
		// default instead of materializing an empty slice.
		if !doc.HasItemsCount(prefix + em.Accessor.Name()) {
			return nil
		}
		count := doc.ExtractItemsCount(prefix + em.Accessor.Name())
		items := make([]any, 0, count)
		for range count {
			sub, err := res.GetModel(doc, em.Accessor.ElemType(), newPrefix)
			if err != nil {
				return err
			}
			items = append(items, sub)
		}
		return em.Accessor.Set(model, items)
	}

	sub, err := res.GetModel(doc, em.Accessor.ValueType(), newPrefix)
	if err != nil {
		return err
	}
	return em.Accessor.Set(model, sub)
}
