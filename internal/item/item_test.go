package item

import (
	"errors"
	"strings"
	"testing"
)

const loginJSON = `{
  "id": "x7k2",
  "title": "GitHub",
  "tags": ["dev", "work"],
  "category": "LOGIN",
  "fields": [
    {"id": "username", "type": "STRING", "label": "username", "reference": "op://Private/GitHub/username"},
    {"id": "password", "type": "CONCEALED", "label": "password", "reference": "op://Private/GitHub/password"},
    {"id": "notesPlain", "type": "STRING", "label": "notesPlain", "reference": "op://Private/GitHub/notesPlain"},
    {"id": "k1", "type": "CONCEALED", "label": "password", "section": {"id": "s1", "label": "Recovery"}, "reference": "op://Private/GitHub/Recovery/password"}
  ]
}`

func TestParseKeepsOnlyPasswordFields(t *testing.T) {
	it, err := Parse([]byte(loginJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if it.Title != "GitHub" {
		t.Errorf("Title = %q, want %q", it.Title, "GitHub")
	}
	if len(it.Tags) != 2 || it.Tags[0] != "dev" || it.Tags[1] != "work" {
		t.Errorf("Tags = %v, want [dev work]", it.Tags)
	}
	if len(it.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(it.Sections), it.Sections)
	}
	for _, s := range it.Sections {
		if !strings.Contains(s.Reference, "password") {
			t.Errorf("section %q kept non-password reference %q", s.Title, s.Reference)
		}
	}
}

func TestSectionTitleFallback(t *testing.T) {
	it, err := Parse([]byte(loginJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// No section descriptor: record title.
	if it.Sections[0].Title != "GitHub" {
		t.Errorf("Sections[0].Title = %q, want %q", it.Sections[0].Title, "GitHub")
	}
	if it.Sections[0].Reference != "op://Private/GitHub/password" {
		t.Errorf("Sections[0].Reference = %q", it.Sections[0].Reference)
	}

	// Labelled section descriptor: its label.
	if it.Sections[1].Title != "Recovery" {
		t.Errorf("Sections[1].Title = %q, want %q", it.Sections[1].Title, "Recovery")
	}
}

func TestSectionWithoutLabelUsesRecordTitle(t *testing.T) {
	data := `{"title": "AWS", "fields": [
		{"reference": "op://Work/AWS/add more/password", "section": {"id": "add more"}}
	]}`
	it, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(it.Sections) != 1 || it.Sections[0].Title != "AWS" {
		t.Errorf("expected one section titled AWS, got %+v", it.Sections)
	}
}

func TestRepeatedTitlesAreNotMerged(t *testing.T) {
	data := `{"title": "Server", "fields": [
		{"reference": "op://Ops/Server/password"},
		{"reference": "op://Ops/Server/root password"},
		{"reference": "op://Ops/Server/hostname"}
	]}`
	it, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(it.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(it.Sections))
	}
	if it.Sections[0].Title != "Server" || it.Sections[1].Title != "Server" {
		t.Errorf("expected both sections titled Server, got %+v", it.Sections)
	}
	if it.Sections[1].Reference != "op://Ops/Server/root password" {
		t.Errorf("section order not preserved: %+v", it.Sections)
	}
}

func TestParseDefaultsTags(t *testing.T) {
	it, err := Parse([]byte(`{"title": "No tags", "fields": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if it.Tags == nil || len(it.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty slice", it.Tags)
	}
	if it.Sections == nil || len(it.Sections) != 0 {
		t.Errorf("Sections = %#v, want empty slice", it.Sections)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"title": `,
		"missing title":  `{"fields": []}`,
		"missing fields": `{"title": "x"}`,
		"wrong type":     `{"title": 42, "fields": []}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestSectionsFlattensInOrder(t *testing.T) {
	items := []Item{
		{Title: "a", Sections: []Section{{Title: "a1"}, {Title: "a2"}}},
		{Title: "b"},
		{Title: "c", Sections: []Section{{Title: "c1"}}},
	}
	got := Sections(items)
	want := []string{"a1", "a2", "c1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(got))
	}
	for i, s := range got {
		if s.Title != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, s.Title, want[i])
		}
	}
}
