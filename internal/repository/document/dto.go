package document

import (
	"sort"
	"strconv"
	"strings"

	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

// Marker key prefixes. Mapped field names never start with "__".
const (
	boostKey    = "__boost"
	countPrefix = "__count:"
	emptyPrefix = "__empty:"
)

// buildHashFields converts a flat document into a map[string]string for
// the store. Repeated values under one name get an ordinal suffix
// ("name#0", "name#1") so write order survives the map; literal "#"
// runes in field names are escaped so the suffix stays unambiguous.
// Indexing flags are dropped at this boundary: the persisted hash
// carries values only, and parseHashFields marks everything stored.
func buildHashFields(doc *domdoc.Document) map[string]string {
	byName := map[string][]string{}
	var order []string
	for _, f := range doc.Fields() {
		if _, seen := byName[f.Name]; !seen {
			order = append(order, f.Name)
		}
		byName[f.Name] = append(byName[f.Name], f.Value)
	}

	m := make(map[string]string, len(byName)+len(doc.ItemCounts())+2)
	for _, name := range order {
		values := byName[name]
		key := encodeFieldKey(name)
		if len(values) == 1 {
			m[key] = values[0]
			continue
		}
		for i, v := range values {
			m[key+"#"+strconv.Itoa(i)] = v
		}
	}

	for name, counts := range doc.ItemCounts() {
		parts := make([]string, len(counts))
		for i, c := range counts {
			parts[i] = strconv.Itoa(c)
		}
		m[countPrefix+name] = strings.Join(parts, ",")
	}
	for _, name := range doc.EmptyFields() {
		m[emptyPrefix+name] = "1"
	}
	if doc.Boost() != domdoc.NeutralBoost {
		m[boostKey] = strconv.FormatFloat(float64(doc.Boost()), 'f', -1, 32)
	}
	return m
}

// parseHashFields converts a flat hash map back into a document. Entries
// come back flagged as stored with neutral boost; ordinal suffixes
// restore the write order of repeated values.
func parseHashFields(m map[string]string) *domdoc.Document {
	doc := domdoc.New()

	type ordinal struct {
		index int
		value string
	}
	repeated := map[string][]ordinal{}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		switch {
		case k == boostKey:
			if b, err := strconv.ParseFloat(v, 32); err == nil {
				doc.SetBoost(float32(b))
			}
		case strings.HasPrefix(k, countPrefix):
			name := strings.TrimPrefix(k, countPrefix)
			for _, part := range strings.Split(v, ",") {
				if c, err := strconv.Atoi(part); err == nil {
					doc.AddItemsCount(name, c)
				}
			}
		case strings.HasPrefix(k, emptyPrefix):
			doc.AddEmpty(strings.TrimPrefix(k, emptyPrefix))
		default:
			name, idx, ok := splitOrdinal(k)
			if !ok {
				doc.Add(decodeFieldKey(k), v, domdoc.Flags{Stored: true})
				continue
			}
			name = decodeFieldKey(name)
			repeated[name] = append(repeated[name], ordinal{index: idx, value: v})
		}
	}

	names := make([]string, 0, len(repeated))
	for name := range repeated {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		values := repeated[name]
		sort.Slice(values, func(i, j int) bool { return values[i].index < values[j].index })
		for _, o := range values {
			doc.Add(name, o.value, domdoc.Flags{Stored: true})
		}
	}

	return doc
}

// encodeFieldKey escapes literal "#" in a field name so an appended
// ordinal suffix is the only unescaped "#" in a value key. A name like
// "x#1" becomes "x#!1", which splitOrdinal rejects as an ordinal.
func encodeFieldKey(name string) string {
	return strings.ReplaceAll(name, "#", "#!")
}

func decodeFieldKey(key string) string {
	return strings.ReplaceAll(key, "#!", "#")
}

// splitOrdinal splits "name#3" into ("name", 3, true).
func splitOrdinal(key string) (string, int, bool) {
	at := strings.LastIndex(key, "#")
	if at < 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(key[at+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:at], idx, true
}
