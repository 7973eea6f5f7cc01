package mapper

import (
	"reflect"

	"github.com/calder-search/docdex/internal/domain/document"
	"github.com/calder-search/docdex/internal/domain/mapping"
)

// funcAccessor implements mapping.Accessor from closures, standing in for
// the registration-time reflection accessors.
type funcAccessor struct {
	name       string
	collection bool
	readonly   bool
	valueType  reflect.Type
	elemType   reflect.Type
	get        func(model any) (any, bool)
	set        func(model any, value any) error
}

func (a *funcAccessor) Name() string            { return a.name }
func (a *funcAccessor) Collection() bool        { return a.collection }
func (a *funcAccessor) Writable() bool          { return !a.readonly }
func (a *funcAccessor) ValueType() reflect.Type { return a.valueType }
func (a *funcAccessor) ElemType() reflect.Type  { return a.elemType }

func (a *funcAccessor) Get(model any) (any, bool) {
	return a.get(model)
}

func (a *funcAccessor) Set(model any, value any) error {
	if a.set == nil {
		return nil
	}
	return a.set(model, value)
}

// testResolver resolves configurations from a static type map, delegating
// back into the mapper like the real registry does.
type testResolver struct {
	configs map[reflect.Type]*mapping.Config
}

func (r *testResolver) GetDocument(model any, prefix string) (*document.Document, error) {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ToDocument(r.configs[t], model, r, prefix)
}

func (r *testResolver) GetModel(doc *document.Document, target reflect.Type, prefix string) (any, error) {
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	return ToModel(r.configs[target], doc, r, prefix)
}

// Test model graph: a file with scalar members, an optional embedded
// meta reference and a repeated embedded page collection.

type fileModel struct {
	Filename string
	Text     string
	Size     *int64
	Tags     []string
	Meta     *metaModel
	Pages    []pageModel
}

type metaModel struct {
	Author string
}

type pageModel struct {
	Number int
	Body   string
	Words  []string
}

var (
	stringType  = reflect.TypeOf("")
	int64Type   = reflect.TypeOf(int64(0))
	intType     = reflect.TypeOf(0)
	stringsType = reflect.TypeOf([]string{})
	metaType    = reflect.TypeOf(metaModel{})
	pageType    = reflect.TypeOf(pageModel{})
	pagesType   = reflect.TypeOf([]pageModel{})
)

func filenameAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Filename", valueType: stringType,
		get: func(m any) (any, bool) { return m.(*fileModel).Filename, true },
		set: func(m, v any) error { m.(*fileModel).Filename = v.(string); return nil },
	}
}

func textAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Text", valueType: stringType,
		get: func(m any) (any, bool) { return m.(*fileModel).Text, true },
		set: func(m, v any) error { m.(*fileModel).Text = v.(string); return nil },
	}
}

func sizeAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Size", valueType: int64Type,
		get: func(m any) (any, bool) {
			f := m.(*fileModel)
			if f.Size == nil {
				return nil, false
			}
			return *f.Size, true
		},
		set: func(m, v any) error {
			n := v.(int64)
			m.(*fileModel).Size = &n
			return nil
		},
	}
}

func tagsAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Tags", collection: true, valueType: stringsType, elemType: stringType,
		get: func(m any) (any, bool) {
			f := m.(*fileModel)
			if f.Tags == nil {
				return nil, false
			}
			return f.Tags, true
		},
		set: func(m, v any) error { m.(*fileModel).Tags = v.([]string); return nil },
	}
}

func metaAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Meta", valueType: metaType, elemType: metaType,
		get: func(m any) (any, bool) {
			f := m.(*fileModel)
			if f.Meta == nil {
				return nil, false
			}
			return f.Meta, true
		},
		set: func(m, v any) error { m.(*fileModel).Meta = v.(*metaModel); return nil },
	}
}

func pagesAccessor() *funcAccessor {
	return &funcAccessor{
		name: "Pages", collection: true, valueType: pagesType, elemType: pageType,
		get: func(m any) (any, bool) {
			f := m.(*fileModel)
			if f.Pages == nil {
				return nil, false
			}
			return f.Pages, true
		},
		set: func(m, v any) error {
			items := v.([]any)
			pages := make([]pageModel, 0, len(items))
			for _, item := range items {
				pages = append(pages, *item.(*pageModel))
			}
			m.(*fileModel).Pages = pages
			return nil
		},
	}
}

func metaConfig() *mapping.Config {
	return &mapping.Config{
		Type: metaType,
		Fields: []mapping.FieldMapping{{
			Name: "Author",
			Accessor: &funcAccessor{
				name: "Author", valueType: stringType,
				get: func(m any) (any, bool) { return m.(*metaModel).Author, true },
				set: func(m, v any) error { m.(*metaModel).Author = v.(string); return nil },
			},
		}},
	}
}

func pageConfig() *mapping.Config {
	return &mapping.Config{
		Type: pageType,
		Fields: []mapping.FieldMapping{
			{
				Name: "Number",
				Accessor: &funcAccessor{
					name: "Number", valueType: intType,
					get: func(m any) (any, bool) { return m.(*pageModel).Number, true },
					set: func(m, v any) error { m.(*pageModel).Number = v.(int); return nil },
				},
			},
			{
				Name: "Body",
				Accessor: &funcAccessor{
					name: "Body", valueType: stringType,
					get: func(m any) (any, bool) { return m.(*pageModel).Body, true },
					set: func(m, v any) error { m.(*pageModel).Body = v.(string); return nil },
				},
			},
			{
				Name: "Words",
				Accessor: &funcAccessor{
					name: "Words", collection: true, valueType: stringsType, elemType: stringType,
					get: func(m any) (any, bool) {
						p := m.(*pageModel)
						if p.Words == nil {
							return nil, false
						}
						return p.Words, true
					},
					set: func(m, v any) error { m.(*pageModel).Words = v.([]string); return nil },
				},
			},
		},
	}
}

func fileConfig() *mapping.Config {
	return &mapping.Config{
		Type: reflect.TypeOf(fileModel{}),
		Fields: []mapping.FieldMapping{
			{Name: "Filename", Accessor: filenameAccessor(), Flags: mapping.FieldFlags{Required: true, Stored: true, Boost: 10}},
			{Name: "Text", Accessor: textAccessor(), Flags: mapping.FieldFlags{Analyzed: true}},
			{Name: "Size", Accessor: sizeAccessor()},
			{Name: "Tags", Accessor: tagsAccessor()},
		},
		Embedded: []mapping.EmbeddedMapping{
			{Accessor: metaAccessor()},
			{Accessor: pagesAccessor()},
		},
	}
}

func fileResolver() *testResolver {
	return &testResolver{configs: map[reflect.Type]*mapping.Config{
		reflect.TypeOf(fileModel{}): fileConfig(),
		metaType:                    metaConfig(),
		pageType:                    pageConfig(),
	}}
}
