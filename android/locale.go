package android

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// ValuesDirName converts a BCP-47 locale to an Android res/ values directory
// name:
//
//	""         -> values
//	"ru"       -> values-ru
//	"pt_BR"    -> values-pt-rBR
//	"sr-Latn"  -> values-b+sr+Latn
//	"es-419"   -> values-b+es+419
//
// Only subtags written in the locale are used; inferred ones are ignored.
func ValuesDirName(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "values", nil
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	base, _ := tag.Base()
	script, scriptConf := tag.Script()
	region, regionConf := tag.Region()
	hasScript := scriptConf == language.Exact
	hasRegion := regionConf == language.Exact

	// The legacy values-xx-rYY form only takes a two-letter region and no script.
	if hasScript || (hasRegion && !region.IsCountry()) {
		parts := []string{"values-b", base.String()}
		if hasScript {
			parts = append(parts, script.String())
		}
		if hasRegion {
			parts = append(parts, region.String())
		}
		return strings.Join(parts, "+"), nil
	}
	if hasRegion {
		return "values-" + base.String() + "-r" + region.String(), nil
	}
	return "values-" + base.String(), nil
}

// SameLocale reports whether a and b name the same language tag.
func SameLocale(a, b string) bool {
	norm := func(s string) string { return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) }
	return norm(a) == norm(b)
}

// StringsXMLPath returns the strings.xml path for locale under resDir.
// The default locale (and an empty one) maps to the unqualified values/ directory.
func StringsXMLPath(resDir, locale, defaultLocale string) (string, error) {
	if SameLocale(locale, defaultLocale) {
		locale = ""
	}
	dir, err := ValuesDirName(locale)
	if err != nil {
		return "", err
	}
	return filepath.Join(resDir, dir, "strings.xml"), nil
}
