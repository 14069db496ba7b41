// Package android generates Android strings.xml resource documents from ARB
// bundles.
//
// Every "@id" metadata marker of the bundle produces exactly one resource:
//   - <plurals>  when the marker names a "plural" selector variable; the
//     forms are read from the idZero, idOne, idTwo, idFew, idMany and
//     idOther value keys
//   - <string>   with %N$s positional placeholders when the marker lists
//     "parameters"
//   - <string>   with the translation copied verbatim otherwise
//
// Generation is all-or-nothing: a single inconsistent entry fails the whole
// document and nothing is returned.
package android

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minios-linux/arb2android/arbfile"
)

// Header opens every generated document.
const Header = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
	"<!-- Generated by arb2android from the ARB bundle. Do not edit. -->\n" +
	"<resources>\n"

// Footer closes every generated document.
const Footer = "</resources>\n"

// Precondition failures. Each one aborts generation.
var (
	ErrMissingValue       = errors.New("missing translation")
	ErrMissingDescription = errors.New("missing description")
	ErrEmptyParameters    = errors.New("empty parameters list")
)

// pluralSuffixes lists the value-key suffixes of a plural family in output order.
var pluralSuffixes = []string{"Zero", "One", "Two", "Few", "Many", "Other"}

// Kind classifies a resource by its metadata.
type Kind int

const (
	// KindString is a plain <string> copied verbatim.
	KindString Kind = iota
	// KindParameterized is a <string> with positional placeholders.
	KindParameterized
	// KindPlurals is a <plurals> group.
	KindPlurals
)

func (k Kind) String() string {
	switch k {
	case KindParameterized:
		return "parameterized"
	case KindPlurals:
		return "plurals"
	}
	return "string"
}

// Classify picks the resource kind for a metadata marker. The plural
// selector takes precedence over a parameters list.
func Classify(m *arbfile.Metadata) Kind {
	switch {
	case m.IsPlural():
		return KindPlurals
	case m.HasParameters():
		return KindParameterized
	}
	return KindString
}

// ---------------------------------------------------------------------------
// Document assembly
// ---------------------------------------------------------------------------

// Generate renders the complete strings.xml document for b.
func Generate(b *arbfile.Bundle) (string, error) {
	var sb strings.Builder
	sb.WriteString(Header)

	for _, key := range b.Keys() {
		// Value keys and bundle-level keys are reached through their marker.
		if !arbfile.IsMetadataKey(key) {
			continue
		}
		id := arbfile.ResourceID(key)
		meta, _ := b.Metadata(id)
		if !meta.HasDescription() {
			return "", fmt.Errorf("%w for %q", ErrMissingDescription, id)
		}

		var err error
		switch Classify(meta) {
		case KindPlurals:
			err = writePlurals(&sb, b, id, meta)
		case KindParameterized:
			err = writeParameterized(&sb, b, id, meta)
		default:
			err = writePlain(&sb, b, id, meta)
		}
		if err != nil {
			return "", err
		}
	}

	sb.WriteString(Footer)
	return sb.String(), nil
}

// ---------------------------------------------------------------------------
// Resource rendering
// ---------------------------------------------------------------------------

func translation(b *arbfile.Bundle, id string) (string, error) {
	v, ok := b.Value(id)
	if !ok {
		return "", fmt.Errorf("%w for %q", ErrMissingValue, id)
	}
	return v, nil
}

func writePlain(sb *strings.Builder, b *arbfile.Bundle, id string, meta *arbfile.Metadata) error {
	v, err := translation(b, id)
	if err != nil {
		return err
	}
	writeString(sb, Escape(id), Escape(meta.Description), Escape(v))
	return nil
}

func writeParameterized(sb *strings.Builder, b *arbfile.Bundle, id string, meta *arbfile.Metadata) error {
	params, err := ParseParameters(meta.Parameters)
	if err != nil {
		return fmt.Errorf("%w for %q", err, id)
	}
	v, err := translation(b, id)
	if err != nil {
		return err
	}
	desc := SubstituteParams(meta.Description, params)
	v = SubstituteParams(v, params)
	writeString(sb, Escape(id), Escape(desc), Escape(v))
	return nil
}

func writePlurals(sb *strings.Builder, b *arbfile.Bundle, id string, meta *arbfile.Metadata) error {
	selector := "$" + meta.Plural

	type item struct{ quantity, text string }
	var items []item
	for _, suffix := range pluralSuffixes {
		v, ok := b.Value(id + suffix)
		if !ok {
			continue
		}
		// %d goes in before escaping; it has nothing to escape.
		v = strings.Replace(v, selector, "%d", 1)
		items = append(items, item{strings.ToLower(suffix), Escape(v)})
	}
	if len(items) == 0 {
		return fmt.Errorf("%w for %q: none of %sZero..%sOther exists", ErrMissingValue, id, id, id)
	}

	desc := strings.ReplaceAll(meta.Description, selector, "%d")
	fmt.Fprintf(sb, "  <plurals\n    name=\"%s\"\n    description=\"%s\">\n", Escape(id), Escape(desc))
	for _, it := range items {
		fmt.Fprintf(sb, "    <item\n      quantity=\"%s\"\n      >%s</item>\n", it.quantity, it.text)
	}
	sb.WriteString("  </plurals>\n")
	return nil
}

// writeString emits one <string> element; all arguments are already escaped.
func writeString(sb *strings.Builder, name, desc, body string) {
	fmt.Fprintf(sb, "  <string\n    name=\"%s\"\n    description=\"%s\"\n    >%s</string>\n", name, desc, body)
}
