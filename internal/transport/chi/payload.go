package chi

import (
	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

// documentPayload is the wire form of a flat document.
type documentPayload struct {
	Fields []fieldPayload   `json:"fields"`
	Counts map[string][]int `json:"counts,omitempty"`
	Empty  []string         `json:"empty,omitempty"`
	Boost  float32          `json:"boost,omitempty"`
}

type fieldPayload struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Analyzed   bool    `json:"analyzed,omitempty"`
	Stored     bool    `json:"stored,omitempty"`
	Compressed bool    `json:"compressed,omitempty"`
	Boost      float32 `json:"boost,omitempty"`
}

func toDomainDocument(p documentPayload) *domdoc.Document {
	doc := domdoc.New()
	for _, f := range p.Fields {
		doc.Add(f.Name, f.Value, domdoc.Flags{
			Analyzed:   f.Analyzed,
			Stored:     f.Stored,
			Compressed: f.Compressed,
			Boost:      f.Boost,
		})
	}
	for name, counts := range p.Counts {
		for _, c := range counts {
			doc.AddItemsCount(name, c)
		}
	}
	for _, name := range p.Empty {
		doc.AddEmpty(name)
	}
	if p.Boost != 0 {
		doc.SetBoost(p.Boost)
	}
	return doc
}

func fromDomainDocument(doc *domdoc.Document) documentPayload {
	p := documentPayload{
		Counts: doc.ItemCounts(),
		Empty:  doc.EmptyFields(),
	}
	if doc.Boost() != domdoc.NeutralBoost {
		p.Boost = doc.Boost()
	}
	for _, f := range doc.Fields() {
		p.Fields = append(p.Fields, fieldPayload{
			Name:       f.Name,
			Value:      f.Value,
			Analyzed:   f.Flags.Analyzed,
			Stored:     f.Flags.Stored,
			Compressed: f.Flags.Compressed,
			Boost:      f.Flags.Boost,
		})
	}
	if len(p.Counts) == 0 {
		p.Counts = nil
	}
	if len(p.Empty) == 0 {
		p.Empty = nil
	}
	return p
}
