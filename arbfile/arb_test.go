package arbfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleARB = `{
  "@@locale": "en",
  "@@last_modified": "2024-03-01T10:00:00.000",
  "greeting": "Hello, $name!",
  "@greeting": {
    "description": "Greets $name",
    "parameters": "name"
  },
  "itemsOne": "$count item",
  "itemsOther": "$count items",
  "@items": {
    "description": "Number of items",
    "plural": "count"
  },
  "farewell": "Goodbye!",
  "@farewell": {
    "description": "Shown on exit"
  }
}
`

func TestParse_Basic(t *testing.T) {
	b, err := Parse([]byte(sampleARB))
	if err != nil {
		t.Fatal(err)
	}
	if b.Locale() != "en" {
		t.Errorf("locale = %q, want %q", b.Locale(), "en")
	}
	if b.LastModified() != "2024-03-01T10:00:00.000" {
		t.Errorf("last modified = %q", b.LastModified())
	}
	if v, _ := b.Value("greeting"); v != "Hello, $name!" {
		t.Errorf("greeting = %q", v)
	}
	if v, _ := b.Value("itemsOther"); v != "$count items" {
		t.Errorf("itemsOther = %q", v)
	}
	if n := len(b.Keys()); n != 9 {
		t.Errorf("len(Keys()) = %d, want 9", n)
	}
}

func TestParse_KeyOrderPreserved(t *testing.T) {
	b, err := Parse([]byte(sampleARB))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"@@locale", "@@last_modified",
		"greeting", "@greeting",
		"itemsOne", "itemsOther", "@items",
		"farewell", "@farewell",
	}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := b.ResourceIDs(); !reflect.DeepEqual(got, []string{"greeting", "items", "farewell"}) {
		t.Errorf("ResourceIDs() = %v", got)
	}
}

func TestParse_Metadata(t *testing.T) {
	b, err := Parse([]byte(sampleARB))
	if err != nil {
		t.Fatal(err)
	}

	m, ok := b.Metadata("greeting")
	if !ok {
		t.Fatal("@greeting metadata not found")
	}
	if !m.HasDescription() || m.Description != "Greets $name" {
		t.Errorf("description = %q (present=%v)", m.Description, m.HasDescription())
	}
	if !m.HasParameters() || m.Parameters != "name" || m.IsPlural() {
		t.Errorf("unexpected greeting metadata: %+v", m)
	}

	m, _ = b.Metadata("items")
	if !m.IsPlural() || m.Plural != "count" {
		t.Errorf("items plural = %q", m.Plural)
	}

	if _, ok := b.Metadata("itemsOne"); ok {
		t.Error("value key should not have metadata")
	}
}

func TestParse_MissingDescription(t *testing.T) {
	b, err := Parse([]byte(`{"a":"x","@a":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := b.Metadata("a")
	if !ok {
		t.Fatal("metadata not found")
	}
	if m.HasDescription() {
		t.Error("HasDescription() = true for marker without description")
	}
}

func TestParse_EmptyParametersIsPresent(t *testing.T) {
	b, err := Parse([]byte(`{"a":"$x","@a":{"description":"d","parameters":""},"c":"y","@c":{"description":"d"}}`))
	if err != nil {
		t.Fatal(err)
	}
	m, _ := b.Metadata("a")
	if !m.HasParameters() {
		t.Error("HasParameters() = false for an empty parameters field")
	}
	m, _ = b.Metadata("c")
	if m.HasParameters() {
		t.Error("HasParameters() = true for a marker without parameters")
	}
}

func TestValue_MetadataAndBundleKeys(t *testing.T) {
	b, err := Parse([]byte(sampleARB))
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"@greeting", "@@locale", "missing"} {
		if _, ok := b.Value(k); ok {
			t.Errorf("Value(%q) ok = true, want false", k)
		}
	}
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	b, err := Parse([]byte(`{"a":"1","b":"2","a":"3"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
	if v, _ := b.Value("a"); v != "3" {
		t.Errorf("a = %q, want 3", v)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"not json", `hello`},
		{"array", `["a"]`},
		{"truncated", `{"a":"b"`},
		{"trailing data", `{"a":"b"} {}`},
		{"number value", `{"a":1}`},
		{"string metadata", `{"a":"b","@a":"desc"}`},
		{"non-string description", `{"a":"b","@a":{"description":3}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse(%q) error = %v, want ErrMalformed", tc.data, err)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app_en.arb")
	if err := os.WriteFile(path, []byte(sampleARB), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if b.Locale() != "en" {
		t.Errorf("locale = %q", b.Locale())
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.arb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestKeyClassification(t *testing.T) {
	if !IsBundleKey("@@last_modified") || IsBundleKey("@title") {
		t.Error("IsBundleKey misclassified")
	}
	if !IsMetadataKey("@title") || IsMetadataKey("@@locale") || IsMetadataKey("title") {
		t.Error("IsMetadataKey misclassified")
	}
	if ResourceID("@title") != "title" {
		t.Errorf("ResourceID(@title) = %q", ResourceID("@title"))
	}
}
