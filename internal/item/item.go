// Package item converts records returned by the 1Password CLI into the
// simplified model optui searches over.
//
// Only password-bearing fields survive the conversion. Each one becomes a
// Section whose title is what the user fuzzy-searches and whose reference
// (an op:// locator) is resolved to a secret value only at copy time.
package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// passwordMarker identifies password-class fields by their reference string.
const passwordMarker = "password"

// ErrMalformed is returned when a raw record cannot be decoded.
var ErrMalformed = errors.New("malformed record")

// Record is one item as printed by `op item get --format json`.
type Record struct {
	Title  *string  `json:"title"`
	Tags   []string `json:"tags"`
	Fields *[]Field `json:"fields"`
}

// Field is a single field of a Record.
type Field struct {
	Reference string        `json:"reference"`
	Label     string        `json:"label"`
	Section   *SectionLabel `json:"section,omitempty"`
}

// SectionLabel is the section descriptor attached to a field.
type SectionLabel struct {
	Label *string `json:"label"`
}

// Item is the cached, searchable form of a Record.
type Item struct {
	Title    string    `json:"title"`
	Tags     []string  `json:"tags"`
	Sections []Section `json:"sections"`
}

// Section is one password-bearing field of an Item.
type Section struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
}

// Summary is one entry of `op item list --format json`.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Parse decodes raw record JSON and converts it to an Item.
func Parse(data []byte) (Item, error) {
	var raw Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Title == nil {
		return Item{}, fmt.Errorf("%w: missing title", ErrMalformed)
	}
	if raw.Fields == nil {
		return Item{}, fmt.Errorf("%w: missing fields", ErrMalformed)
	}
	return FromRecord(raw), nil
}

// FromRecord keeps the password fields of raw, in order, as Sections.
// A field without a labelled section is titled after the record.
func FromRecord(raw Record) Item {
	var title string
	if raw.Title != nil {
		title = *raw.Title
	}

	var fields []Field
	if raw.Fields != nil {
		fields = *raw.Fields
	}

	sections := make([]Section, 0, len(fields))
	for _, f := range fields {
		if !strings.Contains(f.Reference, passwordMarker) {
			continue
		}
		sectionTitle := title
		if f.Section != nil && f.Section.Label != nil {
			sectionTitle = *f.Section.Label
		}
		sections = append(sections, Section{Title: sectionTitle, Reference: f.Reference})
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	return Item{
		Title:    title,
		Tags:     tags,
		Sections: sections,
	}
}

// Sections flattens the sections of items, item order first.
func Sections(items []Item) []Section {
	var n int
	for _, it := range items {
		n += len(it.Sections)
	}
	out := make([]Section, 0, n)
	for _, it := range items {
		out = append(out, it.Sections...)
	}
	return out
}
