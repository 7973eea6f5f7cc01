package docdex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/calder-search/docdex/internal/codec"
	"github.com/calder-search/docdex/internal/domain"
	"github.com/calder-search/docdex/internal/domain/mapping"
)

const tagKey = "docdex"

var timeType = reflect.TypeOf(time.Time{})

// parseSchema reflects on T once and derives its mapping configuration
// from docdex struct tags. Accessors are bound to struct field indices at
// build time; no reflection on tags happens per conversion.
func parseSchema[T any]() (*mapping.Config, error) {
	t := typeOf[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("docdex: type %s is not a struct", t)
	}

	cfg := &mapping.Config{Type: t}
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("docdex: tagged field %s.%s is unexported", t, f.Name)
		}
		if err := applyTag(cfg, i, f, tag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyTag processes a single struct field's docdex tag.
func applyTag(cfg *mapping.Config, idx int, f reflect.StructField, tag string) error {
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = f.Name
	}

	var (
		flags    mapping.FieldFlags
		embedded bool
		required bool
		readonly bool
		prefix   string
	)
	for _, mod := range parts[1:] {
		switch {
		case mod == "required":
			required = true
		case mod == "analyzed":
			flags.Analyzed = true
		case mod == "stored":
			flags.Stored = true
		case mod == "compressed":
			flags.Compressed = true
		case mod == "readonly":
			readonly = true
		case mod == "embedded":
			embedded = true
		case strings.HasPrefix(mod, "prefix="):
			prefix = strings.TrimPrefix(mod, "prefix=")
		case strings.HasPrefix(mod, "boost="):
			b, err := strconv.ParseFloat(strings.TrimPrefix(mod, "boost="), 32)
			if err != nil {
				return fmt.Errorf("docdex: invalid boost on field %s: %w", f.Name, err)
			}
			flags.Boost = float32(b)
		default:
			return fmt.Errorf("docdex: unknown modifier %q on field %s", mod, f.Name)
		}
	}

	if embedded {
		acc, err := newEmbeddedAccessor(f, idx, readonly)
		if err != nil {
			return err
		}
		cfg.Embedded = append(cfg.Embedded, mapping.EmbeddedMapping{
			Accessor: acc,
			Prefix:   prefix,
			Required: required,
		})
		return nil
	}

	acc, err := newFieldAccessor(f, idx, readonly)
	if err != nil {
		return err
	}
	flags.Required = required
	cfg.Fields = append(cfg.Fields, mapping.FieldMapping{
		Accessor: acc,
		Name:     name,
		Flags:    flags,
	})
	return nil
}

// fieldAccessor reads and writes one scalar or collection member through
// its struct field index.
type fieldAccessor struct {
	name       string
	index      int
	ptr        bool // *S scalar, dereferenced on Get, allocated on Set
	collection bool
	valueType  reflect.Type // S for scalars, []S for collections
	elemType   reflect.Type
	readonly   bool
}

func newFieldAccessor(f reflect.StructField, idx int, readonly bool) (*fieldAccessor, error) {
	a := &fieldAccessor{name: f.Name, index: idx, readonly: readonly}

	t := f.Type
	if t.Kind() == reflect.Pointer {
		a.ptr = true
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.Slice:
		if a.ptr {
			return nil, domain.NewMemberShape(f.Name, "pointer to collection is not supported")
		}
		if !codec.Supported(t.Elem()) {
			return nil, domain.NewMemberShape(f.Name, fmt.Sprintf("collection element type %s is not a supported scalar", t.Elem()))
		}
		a.collection = true
		a.valueType = t
		a.elemType = t.Elem()
	case codec.Supported(t):
		a.valueType = t
	default:
		return nil, domain.NewMemberShape(f.Name, fmt.Sprintf("type %s is not a supported scalar (missing an embedded modifier?)", f.Type))
	}
	return a, nil
}

func (a *fieldAccessor) Name() string            { return a.name }
func (a *fieldAccessor) Collection() bool        { return a.collection }
func (a *fieldAccessor) Writable() bool          { return !a.readonly }
func (a *fieldAccessor) ValueType() reflect.Type { return a.valueType }
func (a *fieldAccessor) ElemType() reflect.Type  { return a.elemType }

func (a *fieldAccessor) Get(model any) (any, bool) {
	f := structValue(model).Field(a.index)
	if a.ptr {
		if f.IsNil() {
			return nil, false
		}
		return f.Elem().Interface(), true
	}
	if a.collection && f.IsNil() {
		return nil, false
	}
	return f.Interface(), true
}

func (a *fieldAccessor) Set(model any, value any) error {
	f, err := settableField(model, a.name, a.index)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(value)
	if a.ptr {
		p := reflect.New(f.Type().Elem())
		p.Elem().Set(rv)
		f.Set(p)
		return nil
	}
	f.Set(rv)
	return nil
}

// embeddedAccessor reads and writes one nested-model member: a struct, a
// pointer to struct, or a slice of either.
type embeddedAccessor struct {
	name       string
	index      int
	ptr        bool // *Sub single embedding
	collection bool
	elemPtr    bool // []*Sub collection
	structType reflect.Type // Sub
	sliceType  reflect.Type
	readonly   bool
}

func newEmbeddedAccessor(f reflect.StructField, idx int, readonly bool) (*embeddedAccessor, error) {
	a := &embeddedAccessor{name: f.Name, index: idx, readonly: readonly}

	t := f.Type
	if t.Kind() == reflect.Slice {
		a.collection = true
		a.sliceType = t
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer {
		if a.collection {
			a.elemPtr = true
		} else {
			a.ptr = true
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil, domain.NewMemberShape(f.Name, fmt.Sprintf("embedded member must be a model struct, got %s", f.Type))
	}
	a.structType = t
	return a, nil
}

func (a *embeddedAccessor) Name() string            { return a.name }
func (a *embeddedAccessor) Collection() bool        { return a.collection }
func (a *embeddedAccessor) Writable() bool          { return !a.readonly }
func (a *embeddedAccessor) ElemType() reflect.Type  { return a.structType }

// ValueType returns the nested struct type for single embeddings and the
// declared slice type for collections.
func (a *embeddedAccessor) ValueType() reflect.Type {
	if a.collection {
		return a.sliceType
	}
	return a.structType
}

func (a *embeddedAccessor) Get(model any) (any, bool) {
	f := structValue(model).Field(a.index)
	if (a.ptr || a.collection) && f.IsNil() {
		return nil, false
	}
	return f.Interface(), true
}

// Set accepts a pointer to the nested struct for single embeddings, or a
// []any of such pointers for collections, as produced by reconstruction.
func (a *embeddedAccessor) Set(model any, value any) error {
	f, err := settableField(model, a.name, a.index)
	if err != nil {
		return err
	}

	if !a.collection {
		rv := reflect.ValueOf(value)
		if a.ptr {
			f.Set(rv)
			return nil
		}
		f.Set(rv.Elem())
		return nil
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("docdex: embedded collection %s expects []any, got %T", a.name, value)
	}
	slice := reflect.MakeSlice(a.sliceType, 0, len(items))
	for _, item := range items {
		rv := reflect.ValueOf(item)
		if a.elemPtr {
			slice = reflect.Append(slice, rv)
		} else {
			slice = reflect.Append(slice, rv.Elem())
		}
	}
	f.Set(slice)
	return nil
}

func structValue(model any) reflect.Value {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

func settableField(model any, name string, index int) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("docdex: set %s: model must be a non-nil pointer, got %T", name, model)
	}
	return v.Elem().Field(index), nil
}
