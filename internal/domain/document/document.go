// Package document holds the flat field/value representation that typed
// models are projected into and reconstructed from.
package document

// NeutralBoost is the default relevance weight for documents and fields.
const NeutralBoost float32 = 1.0

// Flags carries the indexing hints attached to a single field entry.
// The mapper passes them through unchanged; only the index store
// interprets them.
type Flags struct {
	Analyzed   bool
	Stored     bool
	Compressed bool
	Boost      float32
}

// Field is one named entry in a flat document.
type Field struct {
	Name  string
	Value string
	Flags Flags
}

// Document is a flat, schema-less collection of named field entries plus
// auxiliary markers: per-name item counts (collection cardinality) and
// per-name empty markers (field visited but null at mapping time).
//
// Repeated entries under one name keep write order. Extraction is
// cursor-based per name: Extract consumes one value, ExtractValues the
// remainder, ExtractItemsCount one recorded count. The cursors are what
// let repeated embedded sub-models pull their own values back out in
// sequence during reconstruction.
//
// A Document is created per conversion call and is not safe for
// concurrent use.
type Document struct {
	fields []Field
	counts map[string][]int
	empty  map[string]bool
	boost  float32

	valueCursor map[string]int
	countCursor map[string]int
}

// New creates an empty document with neutral boost.
func New() *Document {
	return &Document{
		counts:      map[string][]int{},
		empty:       map[string]bool{},
		boost:       NeutralBoost,
		valueCursor: map[string]int{},
		countCursor: map[string]int{},
	}
}

// Add appends a field entry. A zero boost is normalized to neutral.
func (d *Document) Add(name, value string, flags Flags) {
	if flags.Boost == 0 {
		flags.Boost = NeutralBoost
	}
	d.fields = append(d.fields, Field{Name: name, Value: value, Flags: flags})
}

// Fields returns all field entries in write order.
func (d *Document) Fields() []Field {
	return d.fields
}

// Boost returns the document-level relevance weight.
func (d *Document) Boost() float32 {
	return d.boost
}

// SetBoost sets the document-level relevance weight.
func (d *Document) SetBoost(b float32) {
	d.boost = b
}

// Extract consumes and returns the next unread value recorded under name.
// The second result is false when no unread value remains.
func (d *Document) Extract(name string) (string, bool) {
	skip := d.valueCursor[name]
	for _, f := range d.fields {
		if f.Name != name {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		d.valueCursor[name]++
		return f.Value, true
	}
	return "", false
}

// ExtractValues consumes and returns all unread values recorded under
// name, in write order.
func (d *Document) ExtractValues(name string) []string {
	skip := d.valueCursor[name]
	var out []string
	for _, f := range d.fields {
		if f.Name != name {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, f.Value)
	}
	d.valueCursor[name] += len(out)
	return out
}

// AddItemsCount records how many repeated values or embedded items exist
// for a logical field.
func (d *Document) AddItemsCount(name string, count int) {
	d.counts[name] = append(d.counts[name], count)
}

// HasItemsCount reports whether an unread item-count marker remains for
// name. It does not advance the cursor.
func (d *Document) HasItemsCount(name string) bool {
	return d.countCursor[name] < len(d.counts[name])
}

// ExtractItemsCount consumes and returns the next recorded item count for
// name, or 0 when none remains.
func (d *Document) ExtractItemsCount(name string) int {
	recorded := d.counts[name]
	i := d.countCursor[name]
	if i >= len(recorded) {
		return 0
	}
	d.countCursor[name]++
	return recorded[i]
}

// ItemCounts returns all recorded item-count markers per name.
func (d *Document) ItemCounts() map[string][]int {
	return d.counts
}

// AddEmpty marks a field as visited but null at mapping time, so an unset
// optional field stays distinguishable from an undeclared one.
func (d *Document) AddEmpty(name string) {
	d.empty[name] = true
}

// IsEmpty reports whether name carries an empty marker.
func (d *Document) IsEmpty(name string) bool {
	return d.empty[name]
}

// EmptyFields returns all names carrying an empty marker.
func (d *Document) EmptyFields() []string {
	out := make([]string, 0, len(d.empty))
	for name := range d.empty {
		out = append(out, name)
	}
	return out
}

// Merge appends another document's field entries, item counts and empty
// markers. When the source holds exactly one field entry and no markers,
// that entry is appended with the source's document boost, collapsing a
// single-field sub-document into a plain field of the parent.
func (d *Document) Merge(src *Document) {
	if len(src.fields) == 1 && len(src.counts) == 0 && len(src.empty) == 0 {
		f := src.fields[0]
		f.Flags.Boost = src.boost
		d.Add(f.Name, f.Value, f.Flags)
		return
	}
	d.fields = append(d.fields, src.fields...)
	for name, counts := range src.counts {
		d.counts[name] = append(d.counts[name], counts...)
	}
	for name := range src.empty {
		d.empty[name] = true
	}
}
