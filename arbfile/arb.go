// Package arbfile implements reading of Flutter ARB (Application Resource
// Bundle) files as the input of the strings.xml generator.
//
// ARB files are JSON objects with three kinds of keys:
//
//   - "@@"-prefixed keys (e.g. "@@locale", "@@last_modified") carry
//     bundle-level metadata and never describe a resource.
//   - "@"-prefixed keys (e.g. "@greeting") are metadata markers. Their value
//     is an object with a required "description" and optional "plural" and
//     "parameters" fields.
//   - All other keys are value keys holding the translated string.
//
// Key order from the source file is preserved: the generated document lists
// resources in the order their metadata markers appear in the bundle.
package arbfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Reserved bundle-level keys.
const (
	KeyLocale       = "@@locale"
	KeyLastModified = "@@last_modified"
)

// ErrMalformed is returned when the source document is not a valid bundle.
var ErrMalformed = errors.New("malformed ARB bundle")

// ---------------------------------------------------------------------------
// Bundle model
// ---------------------------------------------------------------------------

// Metadata is the decoded value of an "@id" metadata marker.
type Metadata struct {
	// Description is the human-readable explanation of the resource.
	// It may contain $placeholders.
	Description string
	// Plural is the name of the variable selecting the plural form.
	Plural string
	// Parameters is the raw comma-separated list of placeholder names.
	Parameters string

	hasDescription bool
	hasParameters  bool
}

// HasDescription reports whether the marker carried a "description" field.
func (m *Metadata) HasDescription() bool { return m.hasDescription }

// IsPlural reports whether the resource is a plural family.
func (m *Metadata) IsPlural() bool { return m.Plural != "" }

// HasParameters reports whether the marker carried a "parameters" field.
// A present but blank list still counts: it is rejected by the generator.
func (m *Metadata) HasParameters() bool { return m.hasParameters }

// rawMetadata mirrors the JSON layout of a metadata marker. Pointers tell
// a missing field apart from an empty one.
type rawMetadata struct {
	Description *string `json:"description"`
	Plural      *string `json:"plural"`
	Parameters  *string `json:"parameters"`
}

// entry is a single key of the bundle.
type entry struct {
	value string    // translated text (value keys only)
	meta  *Metadata // decoded marker (metadata keys only)
}

// Bundle is a parsed ARB file.
type Bundle struct {
	locale       string
	lastModified string
	// entries stores every key in document order.
	entries *orderedmap.OrderedMap[string, entry]
}

// IsBundleKey reports whether key is a bundle-level "@@" key.
func IsBundleKey(key string) bool { return strings.HasPrefix(key, "@@") }

// IsMetadataKey reports whether key is an "@id" metadata marker.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, "@") && !IsBundleKey(key)
}

// ResourceID strips the metadata marker from key.
func ResourceID(key string) string { return strings.TrimPrefix(key, "@") }

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an ARB file from disk.
func ParseFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse parses ARB content from a byte slice. Every value key must hold a
// JSON string and every metadata marker a JSON object, otherwise the whole
// bundle is rejected with ErrMalformed.
func Parse(data []byte) (*Bundle, error) {
	b := &Bundle{entries: orderedmap.New[string, entry]()}

	// Token streaming keeps the key order of the document.
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected '{', got %v", ErrMalformed, tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: reading key: %v", ErrMalformed, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string key, got %T", ErrMalformed, keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: value for %q: %v", ErrMalformed, key, err)
		}

		e, err := decodeEntry(key, raw)
		if err != nil {
			return nil, err
		}
		switch key {
		case KeyLocale:
			b.locale = e.value
		case KeyLastModified:
			b.lastModified = e.value
		}
		b.entries.Set(key, e)
	}

	// Closing '}' and nothing after it.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil, fmt.Errorf("%w: unexpected %v after top-level object", ErrMalformed, tok)
	}

	return b, nil
}

func decodeEntry(key string, raw json.RawMessage) (entry, error) {
	var e entry
	switch {
	case IsBundleKey(key):
		// Bundle-level values are informational; only strings are kept.
		var s string
		if json.Unmarshal(raw, &s) == nil {
			e.value = s
		}
	case IsMetadataKey(key):
		meta, err := decodeMetadata(raw)
		if err != nil {
			return e, fmt.Errorf("%w: metadata %q: %v", ErrMalformed, key, err)
		}
		e.meta = meta
	default:
		if err := json.Unmarshal(raw, &e.value); err != nil {
			return e, fmt.Errorf("%w: value %q is not a string", ErrMalformed, key)
		}
	}
	return e, nil
}

func decodeMetadata(raw json.RawMessage) (*Metadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("expected an object")
	}
	var rm rawMetadata
	if err := json.Unmarshal(trimmed, &rm); err != nil {
		return nil, err
	}
	m := &Metadata{}
	if rm.Description != nil {
		m.Description = *rm.Description
		m.hasDescription = true
	}
	if rm.Plural != nil {
		m.Plural = *rm.Plural
	}
	if rm.Parameters != nil {
		m.Parameters = *rm.Parameters
		m.hasParameters = true
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Locale returns the @@locale value, or "" when absent.
func (b *Bundle) Locale() string { return b.locale }

// LastModified returns the @@last_modified value, or "" when absent.
func (b *Bundle) LastModified() string { return b.lastModified }

// Keys returns all keys in document order.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, b.entries.Len())
	for p := b.entries.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// ResourceIDs returns the resource ids of all metadata markers in document order.
func (b *Bundle) ResourceIDs() []string {
	var ids []string
	for p := b.entries.Oldest(); p != nil; p = p.Next() {
		if IsMetadataKey(p.Key) {
			ids = append(ids, ResourceID(p.Key))
		}
	}
	return ids
}

// Value returns the translated string of a value key.
func (b *Bundle) Value(id string) (string, bool) {
	if IsBundleKey(id) || IsMetadataKey(id) {
		return "", false
	}
	e, ok := b.entries.Get(id)
	if !ok {
		return "", false
	}
	return e.value, true
}

// Metadata returns the decoded marker of resource id.
func (b *Bundle) Metadata(id string) (*Metadata, bool) {
	e, ok := b.entries.Get("@" + id)
	if !ok || e.meta == nil {
		return nil, false
	}
	return e.meta, true
}
